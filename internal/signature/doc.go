// Package signature provides the freehand capture surface used for the final
// approval step: a fixed 500×200 bitmap with a pre-rendered guide line, a pad
// state machine driven by begin/extend/end stroke calls, and PNG artifacts.
package signature
