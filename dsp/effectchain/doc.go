// Package effectchain turns a declarative rack of effect modules into a
// live processing chain and keeps the two in step.
//
// A [Rack] is an ordered list of [Module] records. [Chain.Update]
// reconciles the live node chain against a new rack with the least
// reconnection work:
//
//   - Nodes are keyed by module id and live in an arena. A node is created
//     the first time its id appears and destroyed when the id leaves the
//     rack. Bypassed modules keep their node, so state survives
//     un-bypassing.
//   - The ordered ids of the active modules are compared against the
//     connected sequence. Only the suffix from the first divergent index is
//     relinked; the stable prefix is not touched. Divergence at index 0
//     relinks from an empty chain.
//   - If a node of the stable prefix can no longer be found, the whole
//     chain is rebuilt from the rack.
//   - Sidechain taps are resolved after the main chain.
//
// Parameter edits go through [Chain.SetParameter], which is safe to call
// concurrently with [Chain.Process]: every parameter is a lock-free
// smoothed cell. All other methods must be serialised with processing by
// the caller.
package effectchain
