// Package tree implements the sparse commit tree: a simplified, displayable
// approximation of the commit graph anchored to the primary branch. Commits
// are grafted onto a shared backbone by walking their ancestry back to the
// lowest common ancestor with the primary branch tip, so that many requested
// commits collapse into one compact tree instead of a full DAG.
package tree

import "go-smartlog/internal/git"

// Node is a vertex of the sparse tree. It wraps exactly one commit, except
// for the distinguished root node whose commit is the zero value. A node has
// at most one parent; parent and child links are kept mutually consistent by
// the relinking primitives below.
type Node struct {
	Commit          git.Commit
	OnPrimaryBranch bool

	parent   *Node
	children []*Node
}

// newNode creates an unattached node for the given commit.
func newNode(commit git.Commit, onPrimaryBranch bool) *Node {
	return &Node{Commit: commit, OnPrimaryBranch: onPrimaryBranch}
}

// newRootNode creates the root sentinel holding the entire tree.
func newRootNode() *Node {
	return &Node{}
}

// IsRoot returns true for the root sentinel.
func (n *Node) IsRoot() bool {
	return n.Commit.IsEmpty()
}

// Parent returns the node's parent, or nil if it is unattached or the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// HasParent returns true if the node is attached under another node.
func (n *Node) HasParent() bool {
	return n.parent != nil
}

// Children returns the node's children in attachment order. The returned
// slice is shared; callers must not mutate it.
func (n *Node) Children() []*Node {
	return n.children
}

// IsDirectChild returns true if this node's commit is literally a child of
// its parent node's commit. False means the real parent chain was compressed
// (commits between the two were skipped, e.g. by the date cutoff).
func (n *Node) IsDirectChild() bool {
	if n.Commit.IsEmpty() || n.parent == nil || n.parent.Commit.IsEmpty() {
		return false
	}
	return n.Commit.HasParent(n.parent.Commit.Sha)
}

// addChild attaches child under n, keeping both link directions consistent.
// A nil child is caller misuse and panics.
func (n *Node) addChild(child *Node) {
	if child == nil {
		panic("tree: addChild called with nil node")
	}
	child.parent = n
	n.children = append(n.children, child)
}

// removeChild detaches child from n. No-op if child is not attached to n.
// A nil child is caller misuse and panics.
func (n *Node) removeChild(child *Node) {
	if child == nil {
		panic("tree: removeChild called with nil node")
	}
	if child.parent != n {
		return
	}
	child.parent = nil
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			break
		}
	}
}

// splice inserts node between parent and child: child is detached from
// parent, node becomes a child of parent, and child becomes a child of node.
// Pure pointer relinking, no other side effects.
func splice(parent, node, child *Node) {
	parent.removeChild(child)
	parent.addChild(node)
	node.addChild(child)
}
