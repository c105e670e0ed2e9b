// Package draw generates game content.
//
// Every random choice goes through an injected Source, so a fixed seed
// reproduces a draw exactly. Trait allocation runs in two passes: a greedy
// pass picks one trait per category against the remaining power budget,
// then Refine adds traits of unassigned categories while that moves the
// total closer to the target, at most MaxRefinements times.
//
// DrawRoom persists a whole game and must run inside a transaction owned by
// the caller.
package draw
