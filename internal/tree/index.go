package tree

// NodeIndex maps commit SHAs to their nodes, enforcing one node per commit.
type NodeIndex struct {
	bySha map[string]*Node
}

// NewNodeIndex creates an empty index.
func NewNodeIndex() *NodeIndex {
	return &NodeIndex{bySha: make(map[string]*Node)}
}

// Insert registers the node under its commit SHA. No-op if the node is nil,
// wraps no commit, or the SHA is already registered — duplicate detection is
// the caller's job, via Get.
func (ix *NodeIndex) Insert(n *Node) {
	if n == nil || n.Commit.IsEmpty() {
		return
	}
	if _, ok := ix.bySha[n.Commit.Sha]; ok {
		return
	}
	ix.bySha[n.Commit.Sha] = n
}

// Get returns the node registered for the SHA, or nil if there is none.
func (ix *NodeIndex) Get(sha string) *Node {
	if sha == "" {
		return nil
	}
	return ix.bySha[sha]
}

// Len returns the number of indexed nodes.
func (ix *NodeIndex) Len() int {
	return len(ix.bySha)
}
