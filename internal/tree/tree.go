// Package tree implements the arbitrary-depth directory tree: build,
// fold/unfold, sibling/parent navigation, and depth-first flattening with
// ASCII connector prefixes.
//
// Nodes live in a path->Node map; children are stored as child paths, not
// pointers, and a parent is derived from filepath.Dir rather than a
// back-pointer. That keeps the structure acyclic and trivially
// serializable, at the cost of a map lookup per hop.
package tree

import (
	"path/filepath"
	"strings"

	"github.com/qkzk/dired/internal/directory"
	"github.com/qkzk/dired/internal/fileinfo"
	"github.com/qkzk/dired/internal/users"
	"github.com/qkzk/dired/internal/window"
)

// MaxDepth is the build depth cap.
const MaxDepth = 7

// MaxNodes is a safety cap on total nodes built, to bound exploration time
// on huge trees regardless of depth.
const MaxNodes = 20000

// Node is one entry in the tree, keyed by absolute path in Tree.nodes.
type Node struct {
	Path     string
	Info     fileinfo.FileInfo
	Children []string // nil => unexpanded leaf; []string{} => empty directory
	Folded   bool
	Selected bool
}

// Tree is a rooted tree of nodes keyed by absolute path.
//
// Invariant: exactly one node has Selected=true; every child path is a key
// in nodes unless the depth cap was hit.
type Tree struct {
	nodes        map[string]*Node
	RootPath     string
	SelectedPath string
	Sort         directory.SortKey
	Filter       directory.Filter
	Hidden       bool
	Window       window.Window

	nodeCount int
}

// Build constructs a tree rooted at path, exploring up to MaxDepth.
func Build(path string, uc *users.Cache, hidden bool, termHeight int) (*Tree, error) {
	t := &Tree{
		nodes:    make(map[string]*Node),
		RootPath: path,
		Sort:     directory.DefaultSortKey(),
		Filter:   directory.NoFilter(),
		Hidden:   hidden,
	}
	if err := t.buildNode(path, filepath.Base(path), 0, uc); err != nil {
		return nil, err
	}
	t.SelectedPath = path
	if root, ok := t.nodes[path]; ok {
		root.Selected = true
	}
	rows, _ := t.Flatten()
	t.Window = window.New(len(rows), termHeight)
	return t, nil
}

func (t *Tree) buildNode(path, name string, depth int, uc *users.Cache) error {
	if t.nodeCount >= MaxNodes {
		return nil
	}
	fi, err := fileinfo.FromPath(path, name, uc)
	if err != nil {
		return err
	}
	node := &Node{Path: path, Info: fi}
	t.nodes[path] = node
	t.nodeCount++

	if fi.Kind != fileinfo.KindDirectory || depth >= MaxDepth {
		return nil
	}

	children, err := listChildren(path, t.Hidden, t.Filter, t.Sort, uc)
	if err != nil {
		// Unreadable directory: leave as an empty-children leaf rather than
		// failing the whole build.
		node.Children = []string{}
		return nil
	}

	childPaths := make([]string, 0, len(children))
	for _, c := range children {
		if t.nodeCount >= MaxNodes {
			break
		}
		childPath := filepath.Join(path, c.Name)
		childPaths = append(childPaths, childPath)
		_ = t.buildNode(childPath, c.Name, depth+1, uc)
	}
	node.Children = childPaths
	return nil
}

func listChildren(dir string, hidden bool, filter directory.Filter, key directory.SortKey, uc *users.Cache) ([]fileinfo.FileInfo, error) {
	d, err := directory.New(dir, uc, 1000)
	if err != nil {
		return nil, err
	}
	// Directory.New already prepends "." and "..": drop them for tree
	// children, and re-apply tree-specific filter/sort/hidden since
	// Directory defaults may differ from the tree's current settings.
	out := make([]fileinfo.FileInfo, 0, len(d.Content))
	for _, fi := range d.Content {
		if fi.Name == "." || fi.Name == ".." {
			continue
		}
		if !hidden && fi.IsHidden {
			continue
		}
		if !filter.Matches(fi) {
			continue
		}
		out = append(out, fi)
	}
	directory.SortFiles(out, key)
	return out, nil
}

// Node returns the node at path, if present.
func (t *Tree) Node(path string) (*Node, bool) {
	n, ok := t.nodes[path]
	return n, ok
}

// Selected returns the currently selected node.
func (t *Tree) Selected() (*Node, bool) {
	return t.Node(t.SelectedPath)
}

// Parent returns the parent node of n, if it exists in the map (i.e. if n
// isn't the root).
func (t *Tree) Parent(n *Node) (*Node, bool) {
	if n.Path == t.RootPath {
		return nil, false
	}
	return t.Node(filepath.Dir(n.Path))
}

func (t *Tree) select_(path string) {
	if cur, ok := t.Selected(); ok {
		cur.Selected = false
	}
	if n, ok := t.Node(path); ok {
		n.Selected = true
		t.SelectedPath = path
	}
}

// EnsureExpanded lazily builds the children of a node if it was capped at
// MaxDepth (children == nil) the first time a user unfolds deeper.
func (t *Tree) EnsureExpanded(n *Node, uc *users.Cache) {
	if n.Children != nil || n.Info.Kind != fileinfo.KindDirectory {
		return
	}
	children, err := listChildren(n.Path, t.Hidden, t.Filter, t.Sort, uc)
	if err != nil {
		n.Children = []string{}
		return
	}
	paths := make([]string, 0, len(children))
	for _, c := range children {
		childPath := filepath.Join(n.Path, c.Name)
		paths = append(paths, childPath)
		if _, exists := t.nodes[childPath]; !exists {
			t.nodes[childPath] = &Node{Path: childPath, Info: c}
			t.nodeCount++
		}
	}
	n.Children = paths
}

// ToggleFold flips the folded flag on n.
func (t *Tree) ToggleFold(n *Node) { n.Folded = !n.Folded }

// FoldAll folds every node with children.
func (t *Tree) FoldAll() {
	for _, n := range t.nodes {
		if n.Children != nil {
			n.Folded = true
		}
	}
}

// UnfoldAll unfolds every node.
func (t *Tree) UnfoldAll() {
	for _, n := range t.nodes {
		n.Folded = false
	}
}

// sortedChildren returns a node's children in the tree's current sort
// order. Children were already stored sorted at build time, so this simply
// resolves paths to Nodes, skipping any path whose node is missing.
func (t *Tree) sortedChildren(n *Node) []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, p := range n.Children {
		if c, ok := t.nodes[p]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (t *Tree) rootNode() *Node {
	n, _ := t.Node(t.RootPath)
	return n
}

// Next moves the selection depth-first: into the first child if the
// selected node has children and is unfolded, else to the next sibling of
// the nearest ancestor that has one. Staying put if none exists.
func (t *Tree) Next() {
	cur, ok := t.Selected()
	if !ok {
		return
	}
	if !cur.Folded {
		children := t.sortedChildren(cur)
		if len(children) > 0 {
			t.select_(children[0].Path)
			return
		}
	}
	node := cur
	for {
		parent, ok := t.Parent(node)
		if !ok {
			return // root has no next sibling; stay
		}
		siblings := t.sortedChildren(parent)
		idx := indexOfPath(siblings, node.Path)
		if idx >= 0 && idx+1 < len(siblings) {
			t.select_(siblings[idx+1].Path)
			return
		}
		node = parent
	}
}

// Prev is the inverse of Next: moves to the previous sibling's deepest last
// descendant, or up to the parent if there is no previous sibling.
func (t *Tree) Prev() {
	cur, ok := t.Selected()
	if !ok {
		return
	}
	parent, ok := t.Parent(cur)
	if !ok {
		return // root stays
	}
	siblings := t.sortedChildren(parent)
	idx := indexOfPath(siblings, cur.Path)
	if idx > 0 {
		t.select_(t.deepestLastDescendant(siblings[idx-1]).Path)
		return
	}
	t.select_(parent.Path)
}

func (t *Tree) deepestLastDescendant(n *Node) *Node {
	for !n.Folded {
		children := t.sortedChildren(n)
		if len(children) == 0 {
			return n
		}
		n = children[len(children)-1]
	}
	return n
}

// SelectParent moves the selection to the parent of the selected node, staying
// at root if already there.
func (t *Tree) SelectParent() {
	cur, ok := t.Selected()
	if !ok {
		return
	}
	if parent, ok := t.Parent(cur); ok {
		t.select_(parent.Path)
	}
}

// FirstChild moves the selection to the first child of the selected node.
func (t *Tree) FirstChild() {
	cur, ok := t.Selected()
	if !ok {
		return
	}
	children := t.sortedChildren(cur)
	if len(children) > 0 {
		t.select_(children[0].Path)
	}
}

// LastLeaf moves the selection to the deepest, last descendant of the root.
func (t *Tree) LastLeaf() {
	root := t.rootNode()
	if root == nil {
		return
	}
	t.select_(t.deepestLastDescendant(root).Path)
}

// Row is one displayable line of a flattened tree: an ASCII connector
// prefix plus the node it refers to.
type Row struct {
	Prefix string
	Node   *Node
	Depth  int
}

// Flatten performs a depth-first walk, skipping children of folded nodes,
// and returns the displayable rows plus the index of the selected row.
func (t *Tree) Flatten() ([]Row, int) {
	root := t.rootNode()
	if root == nil {
		return nil, 0
	}
	var rows []Row
	selectedIndex := 0
	var walk func(n *Node, ancestorHasNext []bool, depth int)
	walk = func(n *Node, ancestorHasNext []bool, depth int) {
		rows = append(rows, Row{Prefix: buildPrefix(ancestorHasNext), Node: n, Depth: depth})
		if n.Selected {
			selectedIndex = len(rows) - 1
		}
		if n.Folded {
			return
		}
		children := t.sortedChildren(n)
		for i, c := range children {
			hasNext := i < len(children)-1
			walk(c, append(append([]bool{}, ancestorHasNext...), hasNext), depth+1)
		}
	}
	walk(root, nil, 0)
	return rows, selectedIndex
}

// buildPrefix renders the ancestor-chain prefix: for each ancestor "│  " if
// it has a later sibling, else "   "; own connector is "├──" if this node
// has a later sibling, else "└──". Root row is empty.
func buildPrefix(ancestorHasNext []bool) string {
	if len(ancestorHasNext) == 0 {
		return ""
	}
	var b strings.Builder
	for _, hasNext := range ancestorHasNext[:len(ancestorHasNext)-1] {
		if hasNext {
			b.WriteString("│  ")
		} else {
			b.WriteString("   ")
		}
	}
	if ancestorHasNext[len(ancestorHasNext)-1] {
		b.WriteString("├── ")
	} else {
		b.WriteString("└── ")
	}
	return b.String()
}

func indexOfPath(nodes []*Node, path string) int {
	for i, n := range nodes {
		if n.Path == path {
			return i
		}
	}
	return -1
}

// SearchFirstMatch performs a breadth-first search for the first node whose
// name contains query and selects it.
func (t *Tree) SearchFirstMatch(query string) bool {
	root := t.rootNode()
	if root == nil || query == "" {
		return false
	}
	needle := strings.ToLower(query)
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if strings.Contains(strings.ToLower(n.Info.Name), needle) {
			t.select_(n.Path)
			return true
		}
		queue = append(queue, t.sortedChildren(n)...)
	}
	return false
}

// NodeCount returns the number of nodes currently known to the tree.
func (t *Tree) NodeCount() int { return t.nodeCount }
