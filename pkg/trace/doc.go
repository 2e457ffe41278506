// Package trace implements the traceability resolution and coverage engine.
//
// Two complementary algorithms operate on the same reference graph. Anchor
// resolution walks upward from any test-related entity to the canonical
// (level-3) process node it traces to. Scope tracing walks downward from a
// scope item to every test case reachable from it, tagging each result with
// a provenance string. The coverage calculator combines both directions
// into per-scope coverage, execution, and pass-rate metrics, and the layer
// policy decides whether a missing anchor blocks a test case.
//
// The engine is read-only over a Graph except for the single cached
// coverage status write. All operations are deterministic for fixed data
// and bounded by the hierarchy depth and reference fan-out.
package trace
