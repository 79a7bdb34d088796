package output

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"go-smartlog/internal/tree"
)

// maxStraightRun bounds how many consecutive single-child nodes are rendered
// before a run is elided with "╷ ...".
const maxStraightRun = 20

// TreePrinter renders the sparse tree as a smartlog graph. Children render
// above their parent (newest at the top), with `*` marking HEAD, `o` other
// commits, `|` connecting direct parent/child commits and `:` marking
// compressed gaps.
type TreePrinter struct {
	w       io.Writer
	printer *NodePrinter
	headSha string
}

// NewTreePrinter creates a printer writing to w.
func NewTreePrinter(w io.Writer, printer *NodePrinter, headSha string) *TreePrinter {
	return &TreePrinter{w: w, printer: printer, headSha: headSha}
}

// Print renders the whole tree from the root sentinel.
func (tp *TreePrinter) Print(root *tree.Node) error {
	if root == nil {
		return errors.New("output: root node is nil")
	}
	return tp.printChildren(root, "")
}

func (tp *TreePrinter) printChildren(node *tree.Node, prefix string) error {
	mainConnector := ""
	children := sortedChildren(node)
	for i, child := range children {
		skipped := tp.skipRun(child)
		newPrefix := prefix + mainConnector
		if i > 0 {
			newPrefix += " "
		}
		if err := tp.printChildren(skipped, newPrefix); err != nil {
			return err
		}

		if child != skipped {
			if err := tp.line(prefix + "╷ ..."); err != nil {
				return err
			}
			if err := tp.line(prefix + "╷"); err != nil {
				return err
			}
		}

		summary := tp.printer.Summary(child)
		for len(summary) < 2 {
			summary = append(summary, "")
		}

		// First line, with the bullet.
		bullet := "o"
		if !child.Commit.IsEmpty() && child.Commit.Sha == tp.headSha {
			bullet = "*"
		}
		var graph string
		if i == 0 {
			graph = mainConnector + bullet
		} else {
			graph = mainConnector + " " + bullet
		}
		if err := tp.line(prefix + graph + "  " + summary[0]); err != nil {
			return err
		}

		// Update the connector character.
		connector := ":"
		if child.IsDirectChild() {
			connector = "|"
		}
		if i == 0 {
			mainConnector = connector
		}

		// Second line.
		if i == 0 {
			graph = mainConnector
		} else {
			graph = mainConnector + "/ "
		}
		if err := tp.line(prefix + graph + "  " + summary[1]); err != nil {
			return err
		}

		if i > 0 {
			mainConnector = connector
		}

		// Remaining lines.
		if i == 0 {
			graph = mainConnector
		} else {
			graph = connector + "  "
		}
		for _, l := range summary[2:] {
			if err := tp.line(prefix + graph + "  " + l); err != nil {
				return err
			}
		}

		// Spacing to the parent node.
		if i < len(children)-1 {
			graph = mainConnector
		} else {
			graph = connector
		}
		if err := tp.line(prefix + graph); err != nil {
			return err
		}
	}
	return nil
}

// skipRun walks down a single-child run from n and returns the node to resume
// rendering from, keeping only the newest maxStraightRun entries of long runs.
func (tp *TreePrinter) skipRun(n *tree.Node) *tree.Node {
	var kept []*tree.Node
	children := sortedChildren(n)
	for len(children) == 1 {
		kept = append(kept, n)
		if len(kept) > maxStraightRun {
			kept = kept[1:]
		}
		n = children[0]
		children = sortedChildren(n)
	}
	if len(kept) > 0 {
		return kept[0]
	}
	return n
}

func (tp *TreePrinter) line(s string) error {
	_, err := fmt.Fprintln(tp.w, s)
	return err
}

// sortedChildren orders a node's children for display: primary-branch nodes
// first (the backbone hugs the left edge), then by commit time ascending.
func sortedChildren(n *tree.Node) []*tree.Node {
	children := append([]*tree.Node(nil), n.Children()...)
	sort.SliceStable(children, func(i, j int) bool {
		if children[i].OnPrimaryBranch != children[j].OnPrimaryBranch {
			return children[i].OnPrimaryBranch
		}
		return children[i].Commit.When.Before(children[j].Commit.When)
	})
	return children
}
