package inspector

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Node is one entry of an inspected tree.
type Node struct {
	Name      string  `yaml:"name" json:"name"`
	Type      string  `yaml:"type" json:"type"`
	Path      string  `yaml:"path,omitempty" json:"path,omitempty"`
	Value     any     `yaml:"value,omitempty" json:"value,omitempty"`
	Length    int     `yaml:"length,omitempty" json:"length,omitempty"`
	Null      bool    `yaml:"null,omitempty" json:"null,omitempty"`
	Hidden    bool    `yaml:"hidden,omitempty" json:"hidden,omitempty"`
	Transient bool    `yaml:"transient,omitempty" json:"transient,omitempty"`
	Cycle     bool    `yaml:"cycle,omitempty" json:"cycle,omitempty"`
	Truncated bool    `yaml:"truncated,omitempty" json:"truncated,omitempty"`
	Error     string  `yaml:"error,omitempty" json:"error,omitempty"`
	Children  []*Node `yaml:"children,omitempty" json:"children,omitempty"`
}

// Child returns the direct child with the given name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find follows a slash separated chain of child names, e.g. "Items/[0]/Name".
func (n *Node) Find(path string) *Node {
	cur := n
	for _, name := range strings.Split(path, "/") {
		if cur = cur.Child(name); cur == nil {
			return nil
		}
	}
	return cur
}

// Walk calls fn for n and every descendant, parents first. Returning false
// from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Dump writes the tree as YAML.
func Dump(w io.Writer, n *Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return errors.Wrap(err, "failed to encode tree")
	}
	return errors.Wrap(enc.Close(), "failed to flush tree")
}
