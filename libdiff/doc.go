// Package libdiff compares the flat representations of two trees.
//
// Paths are aligned with a diff on path sequences, so that the changes
// come out in an order that follows both inputs.  A path present on both
// sides is Changed when its value differs and Moved when only its
// position does.
package libdiff
