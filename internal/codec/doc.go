// Package codec converts point sets and triangulations to and from
// their external representations.
//
// The binary wire formats are big-endian and carry 32-bit floats:
//
//	PointSet      u32 N, then N records of (f32 x, f32 y)
//	TriangleMesh  a PointSet of V distinct vertices, then u32 T and
//	              T records of three u32 vertex indices
//
// Decoders read only what the header declares and ignore trailing
// bytes. Short input fails with ErrTruncated, and a mesh index past the
// vertex table fails with ErrIndexOutOfRange. Required lengths are
// computed in 64-bit arithmetic so a large count cannot wrap.
//
// Mesh encoding assigns vertex indices in first-seen order, identifying
// vertices by exact coordinate equality.
//
// The JSON and YAML codecs carry the same data as readable documents:
//
//	{"points": [[x, y], ...]}
//	{"vertices": [[x, y], ...], "triangles": [[i, j, k], ...]}
package codec
