package displaytree

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/matzehuels/treedisplay/pkg/errors"
)

// ErrMalformedTree matches every *MalformedTreeError via errors.Is.
var ErrMalformedTree = errors.New("malformed tree")

// MalformedTreeError reports a node whose children are not an ordered sequence.
type MalformedTreeError struct {
	// Path holds the child indices leading from the root to the bad node.
	// It is empty when the root itself is malformed.
	Path []int
}

// Error implements the error interface.
func (e *MalformedTreeError) Error() string {
	if len(e.Path) == 0 {
		return "children are not an array"
	}
	parts := make([]string, len(e.Path))
	for i, p := range e.Path {
		parts[i] = strconv.Itoa(p)
	}
	return fmt.Sprintf("children are not an array (at node %s)", strings.Join(parts, "/"))
}

// Is lets errors.Is(err, ErrMalformedTree) match.
func (e *MalformedTreeError) Is(target error) bool {
	return target == ErrMalformedTree
}

// ErrorCode returns the application error code for this error type.
func (e *MalformedTreeError) ErrorCode() apperrors.Code {
	return apperrors.ErrCodeMalformedTree
}

// Convert turns a display tree into the node graph consumed by the layout
// engine. It is pure and recursive, preserves child order and labels, and
// omits the children of leaves. If any node's children are not a sequence it
// returns a zero Datum and a *MalformedTreeError.
func Convert(t DisplayTree) (Datum, error) {
	return convert(t, nil)
}

func convert(t DisplayTree, path []int) (Datum, error) {
	n := t.Node
	if n.Children == nil {
		return Datum{}, &MalformedTreeError{Path: slices.Clone(path)}
	}

	d := Datum{Name: NodeName}
	if n.Label != nil {
		label := *n.Label
		d.Label = &label
	}
	if len(n.Children) == 0 {
		return d, nil
	}

	d.Children = make([]Datum, len(n.Children))
	for i, child := range n.Children {
		cd, err := convert(child, append(path, i))
		if err != nil {
			return Datum{}, err
		}
		d.Children[i] = cd
	}
	return d, nil
}

// MustConvert is like Convert but panics on malformed input.
// It is intended for trees built with Leaf and Branch.
func MustConvert(t DisplayTree) Datum {
	d, err := Convert(t)
	if err != nil {
		panic(err)
	}
	return d
}
