// Package parallel provides the worker pool used to split per-pixel image
// work into row bands.
//
// Every pixel of a normal map depends only on its own 3x3 neighborhood of
// the (read-only) height field, so an image can be cut into horizontal bands
// that write disjoint output rows. Bands run on a long-lived WorkerPool and
// the caller blocks until all of them are done.
//
// Thread safety: WorkerPool is safe for concurrent use; several images may
// share one pool.
package parallel
