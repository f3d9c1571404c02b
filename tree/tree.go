// Package tree assembles a flat archive entry list into a navigable
// hierarchy with a deterministic child ordering.
//
// Directories are synthesized from path segments, so archives that omit
// directory markers still produce a complete tree. Child ordering does
// not depend on the order entries are fed in: directories sort before
// files, and each group sorts by name ascending.
package tree

import (
	"iter"
	"slices"
	"strings"
	"time"
)

// Entry describes one archive member to be placed in the tree.
type Entry struct {
	Path           string
	Dir            bool
	Size           uint64
	CompressedSize uint64
	Modified       time.Time
}

// Node is one file or directory in the assembled tree.
//
// The root node has an empty Name and Path. Every other node's Path is
// parent.Path + "/" + Name (with the root contributing no prefix).
// Nodes are built once and read-only thereafter; they may be shared
// freely across goroutines.
type Node struct {
	Name           string
	Path           string
	Dir            bool
	Size           uint64
	CompressedSize uint64
	Modified       time.Time
	Children       []*Node
}

// Build assembles entries into a tree rooted at a synthetic directory
// node with empty name and path.
//
// Intermediate directories are created on demand from path segments.
// Feeding the same entries in any order produces an identical tree.
func Build(entries []Entry) *Node {
	root := &Node{Dir: true}
	nodes := map[string]*Node{"": root}

	for _, entry := range entries {
		segs := segments(entry.Path)
		if len(segs) == 0 {
			continue
		}

		parent := root
		prefix := ""
		for _, seg := range segs[:len(segs)-1] {
			prefix = joinPath(prefix, seg)
			parent = ensureDir(nodes, parent, seg, prefix)
		}

		last := segs[len(segs)-1]
		path := joinPath(prefix, last)
		if entry.Dir {
			ensureDir(nodes, parent, last, path)
			continue
		}

		node, ok := nodes[path]
		if !ok {
			node = &Node{Name: last, Path: path}
			parent.Children = append(parent.Children, node)
			nodes[path] = node
		}
		node.Dir = false
		node.Size = entry.Size
		node.CompressedSize = entry.CompressedSize
		node.Modified = entry.Modified
	}

	sortChildren(root)
	return root
}

// ensureDir returns the directory node at path, creating it under
// parent if absent. An existing file node at path is upgraded to a
// directory so later children have somewhere to attach.
func ensureDir(nodes map[string]*Node, parent *Node, name, path string) *Node {
	if node, ok := nodes[path]; ok {
		node.Dir = true
		return node
	}
	node := &Node{Name: name, Path: path, Dir: true}
	parent.Children = append(parent.Children, node)
	nodes[path] = node
	return node
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// sortChildren orders n's children directories-first, each group by
// name ascending, then recurses into children that have children of
// their own.
func sortChildren(n *Node) {
	slices.SortFunc(n.Children, func(a, b *Node) int {
		if a.Dir != b.Dir {
			if a.Dir {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	for _, child := range n.Children {
		if len(child.Children) > 0 {
			sortChildren(child)
		}
	}
}

// All returns every node in the subtree rooted at n, in pre-order:
// each node is yielded before its children, children in sorted order.
// The root itself is yielded first.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.walk(yield) {
			return false
		}
	}
	return true
}

// Files returns all non-directory nodes in the subtree rooted at n,
// in pre-order.
func (n *Node) Files() []*Node {
	var files []*Node
	for node := range n.All() {
		if !node.Dir {
			files = append(files, node)
		}
	}
	return files
}

// Find returns the node whose path exactly matches path after
// normalization. The empty string and "." address the root. The
// second return value reports whether a node was found.
func (n *Node) Find(path string) (*Node, bool) {
	cur := n
	for _, seg := range segments(path) {
		var next *Node
		for _, child := range cur.Children {
			if child.Name == seg {
				next = child
				break
			}
		}
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
