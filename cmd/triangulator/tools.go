package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"triangulator/internal/codec"
	"triangulator/internal/delaunay"
	"triangulator/internal/domain"
	"triangulator/internal/geometry"
	"triangulator/internal/render"
	"triangulator/internal/service"
)

const formatBinary = "binary"

func newTriangulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triangulate [input]",
		Short: "Triangulate a point set file",
		Long: `Triangulate reads a point set (binary, JSON or YAML; "-" or no argument
reads stdin) and writes its Delaunay mesh.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTriangulate,
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("format", "f", formatBinary, "Output format (binary, json, yaml, png)")
	cmd.Flags().Bool("indexed", false, "Write JSON with triangles as indices into the input points")
	cmd.Flags().Bool("stats", false, "Print mesh statistics to stderr")
	cmd.Flags().Int("max-points", 0, "Largest accepted point set (0 = unlimited)")
	return cmd
}

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [input]",
		Short: "Convert a JSON or YAML point set to the binary format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return writeOutput(cmd, func(w io.Writer) error {
				return codec.WritePointSet(w, points)
			})
		},
	}
	addInputFlags(cmd)
	return cmd
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [input]",
		Short: "Convert a binary point set or mesh to JSON or YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDecode,
	}
	cmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringP("format", "f", "json", "Output format (json, yaml)")
	cmd.Flags().Bool("mesh", false, "Input is a mesh rather than a point set")
	return cmd
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Triangulate a point set and draw the mesh as PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	addInputFlags(cmd)
	cmd.Flags().Int("width", 800, "Image width in pixels")
	cmd.Flags().Int("height", 800, "Image height in pixels")
	cmd.Flags().Bool("no-vertices", false, "Do not mark vertices")
	cmd.Flags().Bool("mesh", false, "Input is a binary mesh rather than a point set")
	return cmd
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	cmd.Flags().String("in-format", "", "Input format (binary, json, yaml); guessed from the file extension")
}

func runTriangulate(cmd *cobra.Command, args []string) error {
	points, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	maxPoints, _ := cmd.Flags().GetInt("max-points")
	opts := delaunay.Options{MaxPoints: maxPoints}

	if indexed, _ := cmd.Flags().GetBool("indexed"); indexed {
		triangles, err := delaunay.IndexedWithOptions(points, opts)
		if err != nil {
			return err
		}
		doc := struct {
			Points    [][2]float64 `json:"points"`
			Triangles [][3]int     `json:"triangles"`
		}{Points: make([][2]float64, len(points)), Triangles: triangles}
		for i, p := range points {
			doc.Points[i] = [2]float64{p.X, p.Y}
		}
		return writeOutput(cmd, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		})
	}

	svc := service.NewTriangulationService(nil, service.WithEngineOptions(opts))
	res, err := svc.TriangulatePoints(cmd.Context(), points)
	if err != nil {
		return err
	}

	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		printStats(cmd.ErrOrStderr(), res.Points, res.Triangles)
	}

	format, _ := cmd.Flags().GetString("format")
	return writeOutput(cmd, func(w io.Writer) error {
		return writeMesh(w, res, format)
	})
}

func writeMesh(w io.Writer, res *service.Result, format string) error {
	switch strings.ToLower(format) {
	case formatBinary, "":
		_, err := w.Write(res.Encoded)
		return err
	case "png":
		return render.PNG(w, res.Triangles, render.DefaultOptions())
	default:
		c, err := codec.ForFormat(format)
		if err != nil {
			return err
		}
		return c.ExportMesh(res.Mesh, w)
	}
}

// printStats writes counts that let a user sanity-check a mesh: a Delaunay
// triangulation of n points with h hull vertices has 2n-2-h triangles and
// covers the hull area
func printStats(w io.Writer, points domain.PointSet, tri domain.Triangulation) {
	hull := geometry.ConvexHull(points)
	fmt.Fprintf(w, "points:     %d\n", len(points))
	fmt.Fprintf(w, "hull:       %d vertices, area %g\n", len(hull), geometry.PolygonArea(hull))
	fmt.Fprintf(w, "triangles:  %d (expected %d)\n", len(tri), 2*len(points)-2-len(hull))
	fmt.Fprintf(w, "mesh area:  %g\n", tri.TotalArea())
}

func runDecode(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	c, err := codec.ForFormat(format)
	if err != nil {
		return err
	}

	data, err := readAll(cmd, args)
	if err != nil {
		return err
	}

	if isMesh, _ := cmd.Flags().GetBool("mesh"); isMesh {
		mesh, err := codec.DecodeMesh(data)
		if err != nil {
			return err
		}
		return writeOutput(cmd, func(w io.Writer) error { return c.ExportMesh(mesh, w) })
	}

	points, err := codec.DecodePointSet(data)
	if err != nil {
		return err
	}
	return writeOutput(cmd, func(w io.Writer) error { return c.ExportPointSet(points, w) })
}

func runRender(cmd *cobra.Command, args []string) error {
	var tri domain.Triangulation
	if isMesh, _ := cmd.Flags().GetBool("mesh"); isMesh {
		data, err := readAll(cmd, args)
		if err != nil {
			return err
		}
		mesh, err := codec.DecodeMesh(data)
		if err != nil {
			return err
		}
		tri = mesh.Triangulation()
	} else {
		points, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		if tri, err = delaunay.Triangulate(points); err != nil {
			return err
		}
	}

	opts := render.DefaultOptions()
	opts.Width, _ = cmd.Flags().GetInt("width")
	opts.Height, _ = cmd.Flags().GetInt("height")
	if noVertices, _ := cmd.Flags().GetBool("no-vertices"); noVertices {
		opts.ShowVertices = false
	}

	return writeOutput(cmd, func(w io.Writer) error {
		return render.PNG(w, tri, opts)
	})
}

// inputFormat returns the --in-format flag or guesses from the extension
func inputFormat(cmd *cobra.Command, path string) string {
	if f, _ := cmd.Flags().GetString("in-format"); f != "" {
		return strings.ToLower(f)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return formatBinary
	}
}

func inputPath(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(path)
}

func readAll(cmd *cobra.Command, args []string) ([]byte, error) {
	r, err := openInput(cmd, inputPath(args))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// readInput reads a point set in any supported input format
func readInput(cmd *cobra.Command, args []string) (domain.PointSet, error) {
	path := inputPath(args)
	r, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	format := inputFormat(cmd, path)
	if format == formatBinary {
		return codec.ReadPointSet(r, 0)
	}
	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, err
	}
	return c.ParsePointSet(r)
}

// writeOutput runs write against --out, or stdout when it is unset
func writeOutput(cmd *cobra.Command, write func(io.Writer) error) error {
	path, _ := cmd.Flags().GetString("out")
	if path == "" || path == "-" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
