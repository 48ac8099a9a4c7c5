package design

import "github.com/visiboole/vbcore/pkg/errcode"

// Navigator is the instance-navigation stack behind the
// OpenInstantiation/CloseInstantiation click handles: the excluded GUI
// pushes a dotted instance path when the user drills into a
// sub-module's view, and pops it when they back out.
type Navigator struct {
	stack []string
}

// NewNavigator returns an empty navigator, positioned at the root
// design.
func NewNavigator() *Navigator {
	return &Navigator{}
}

// Open pushes path onto the navigation stack.
func (n *Navigator) Open(path string) {
	n.stack = append(n.stack, path)
}

// Close pops path off the navigation stack; it is an error to close a
// path that is not the current top (mismatched open/close pairing).
func (n *Navigator) Close(path string) error {
	if len(n.stack) == 0 || n.stack[len(n.stack)-1] != path {
		return &errcode.NameError{Name: path, Reason: "instantiation is not currently open"}
	}
	n.stack = n.stack[:len(n.stack)-1]
	return nil
}

// Current returns the dotted path of the instance currently in view,
// or "" at the root design.
func (n *Navigator) Current() string {
	if len(n.stack) == 0 {
		return ""
	}
	return n.stack[len(n.stack)-1]
}

// Depth returns how many levels deep the navigation stack currently is.
func (n *Navigator) Depth() int { return len(n.stack) }
