package output

import (
	"encoding/json"
	"fmt"
	"io"

	"go-smartlog/internal/tree"
)

// jsonNode is the wire form of a tree node.
type jsonNode struct {
	Sha             string     `json:"sha,omitempty"`
	Subject         string     `json:"subject,omitempty"`
	OnPrimaryBranch bool       `json:"onPrimaryBranch"`
	DirectChild     bool       `json:"directChild"`
	Children        []jsonNode `json:"children,omitempty"`
}

// WriteJSON writes the tree as pretty-printed JSON to the writer.
func WriteJSON(w io.Writer, root *tree.Node) error {
	data, err := json.MarshalIndent(toJSONNode(root), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling tree to JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	_, err = w.Write([]byte("\n"))
	return err
}

func toJSONNode(n *tree.Node) jsonNode {
	jn := jsonNode{
		Sha:             n.Commit.Sha,
		Subject:         n.Commit.Subject(),
		OnPrimaryBranch: n.OnPrimaryBranch,
		DirectChild:     n.IsDirectChild(),
	}
	for _, child := range sortedChildren(n) {
		jn.Children = append(jn.Children, toJSONNode(child))
	}
	return jn
}
