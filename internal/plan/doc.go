// Package plan folds findings into a reviewable update plan and applies it.
//
// Building a plan is a pure, deterministic function of the session snapshot
// and its findings; identical inputs always produce an identical plan. The
// executor applies plans item by item with explicit overwrite semantics and
// reports every outcome; one item's failure never aborts the rest, because
// the remote repository has no cross-record transactions.
package plan
