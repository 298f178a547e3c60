// Package delaunay computes planar Delaunay triangulations with the
// Bowyer-Watson incremental algorithm.
//
// Input is validated before any construction: at least three points, all
// coordinates finite, no exact duplicates and not all collinear. A failed
// precondition is reported as an *Error whose Kind names the violation;
// use errors.Is with the Err* sentinels to test for a specific kind.
//
// Construction seeds the working set with a super-triangle far outside the
// bounding box of the input, inserts the points in input order, and finally
// drops every triangle that touches a super-triangle vertex. For a fixed
// input order the output is fixed: bad-triangle removal keeps survivors in
// order and cavity edges are re-triangulated in discovery order.
//
// All functions are pure. Concurrent calls share no state.
package delaunay
