package output

import (
	"strings"

	"go-smartlog/internal/tree"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/samber/lo"
)

const diffRevisionPrefix = "Differential Revision:"

// NodePrinter formats node summaries for the smartlog graph.
type NodePrinter struct {
	refs    *RefMap
	headSha string
}

// NewNodePrinter creates a printer. refs may be nil to omit ref decoration;
// headSha marks the commit rendered as the current position.
func NewNodePrinter(refs *RefMap, headSha string) *NodePrinter {
	return &NodePrinter{refs: refs, headSha: headSha}
}

// Summary returns the display lines for a node:
//
//	line 1: sha  author  [diff]  (refs)  relative time
//	line 2: commit subject
//
// The root sentinel yields no lines.
func (p *NodePrinter) Summary(n *tree.Node) []string {
	if n.IsRoot() {
		return nil
	}
	c := n.Commit

	var b strings.Builder

	if c.Sha == p.headSha {
		b.WriteString(color.MagentaString(c.ShortSha()))
	} else {
		b.WriteString(color.YellowString(c.ShortSha()))
	}
	b.WriteString("  ")

	if author := authorHandle(c.Author); author != "" {
		b.WriteString(author)
		b.WriteString("  ")
	}

	if rev := DifferentialRevision(c.Message); rev != "" {
		b.WriteString(color.BlueString(rev))
		b.WriteString("  ")
	}

	if p.refs != nil {
		if refs := p.refs.Get(c.Sha); len(refs) > 0 {
			decorated := lo.Map(refs, func(name string, _ int) string {
				return colorRef(name)
			})
			b.WriteString(color.GreenString("("))
			b.WriteString(strings.Join(decorated, color.GreenString(", ")))
			b.WriteString(color.GreenString(")"))
			b.WriteString("  ")
		}
	}

	b.WriteString(humanize.Time(c.When))

	return []string{b.String(), c.Subject()}
}

// authorHandle returns the local part of an author email address.
func authorHandle(email string) string {
	if idx := strings.IndexByte(email, '@'); idx >= 0 {
		return email[:idx]
	}
	return email
}

// colorRef colorizes a single reference name: remote refs cyan, the HEAD
// marker magenta, local branches green.
func colorRef(name string) string {
	switch {
	case strings.HasPrefix(name, "origin/"):
		return color.CyanString(name)
	case strings.HasPrefix(name, "HEAD"):
		return color.MagentaString(name)
	default:
		return color.GreenString(name)
	}
}

// DifferentialRevision extracts the revision identifier from a
// "Differential Revision:" trailer, or returns "".
func DifferentialRevision(message string) string {
	for _, line := range strings.Split(message, "\n") {
		if !strings.HasPrefix(line, diffRevisionPrefix) {
			continue
		}
		rest := strings.TrimSpace(line[len(diffRevisionPrefix):])
		if idx := strings.LastIndexByte(rest, '/'); idx >= 0 {
			rest = rest[idx+1:]
		}
		return rest
	}
	return ""
}
