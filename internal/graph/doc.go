// Package graph turns scanned assets into the bake's task graph: one or
// more conversion tasks per asset, each declaring its primary input, its
// overlay chain, and its derived output paths.
//
// Output names are derived mechanically from input names (stem plus a
// kind-specific suffix), so the builder keeps a collision set of every
// claimed output path and fails the whole build when two assets derive the
// same one. The set lives only for the duration of one Build call; the
// finished Graph carries no construction state.
//
// Construction is deliberately single-threaded: the executor gets all the
// parallelism, the builder gets determinism.
package graph
