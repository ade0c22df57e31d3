package mdast

import "github.com/yuin/goldmark/ast"

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n Node) error

// Walk performs a pre-order traversal of the goldmark tree rooted at root and
// calls walkFunc for every construct node. If walkFunc returns a non-nil
// error, the walk stops immediately and returns that error.
func Walk(root ast.Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	return ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		node, ok := n.(Node)
		if !ok {
			return ast.WalkContinue, nil
		}
		if err := walkFunc(node); err != nil {
			return ast.WalkStop, err
		}
		// Construct nodes are leaves.
		return ast.WalkSkipChildren, nil
	})
}

// Collect returns all construct nodes under root in source order.
func Collect(root ast.Node) []Node {
	var result []Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(n Node) error {
		result = append(result, n)
		return nil
	})

	return result
}

// FindByKind returns all construct nodes of the given kind.
func FindByKind(root ast.Node, kind ConstructKind) []Node {
	var result []Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(n Node) error {
		if n.Construct() == kind {
			result = append(result, n)
		}
		return nil
	})

	return result
}

// FindFirst returns the first construct node matching the predicate, or nil.
func FindFirst(root ast.Node, predicate func(n Node) bool) Node {
	var found Node

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(root, func(n Node) error {
		if predicate(n) {
			found = n
			return errStopWalk
		}
		return nil
	})

	return found
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
