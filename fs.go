package crx

import (
	"bytes"
	"io"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/meigma/crx/tree"
)

// Interface compliance.
var (
	_ fs.FS         = (*Package)(nil)
	_ fs.StatFS     = (*Package)(nil)
	_ fs.ReadFileFS = (*Package)(nil)
	_ fs.ReadDirFS  = (*Package)(nil)
)

// fsPath converts an io/fs name to a tree path. fs uses "." for the
// root; the tree uses the empty string.
func fsPath(name string) string {
	if name == "." {
		return ""
	}
	return name
}

// Open implements fs.FS.
//
// Opening a file decodes its content through ReadFile, so the content
// cache applies. Opening a directory returns an fs.ReadDirFile over the
// node's children.
func (p *Package) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	node, ok := p.root.Find(fsPath(name))
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	if node.Dir {
		return &openDir{node: node}, nil
	}

	content, err := p.readFile(node.Path)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return &openFile{node: node, Reader: bytes.NewReader(content)}, nil
}

// Stat implements fs.StatFS.
//
// Stat returns info for the named file or directory without decoding
// any content.
func (p *Package) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}

	node, ok := p.root.Find(fsPath(name))
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return nodeInfo{node: node}, nil
}

// ReadFile implements fs.ReadFileFS.
//
// ReadFile decodes and returns the entire content of the named member.
// Decoded content is kept in an LRU cache (unless disabled with
// WithCacheSize(0)), and concurrent calls for the same path are
// deduplicated so each member is decoded at most once at a time.
// Unknown paths fail with ErrNotFound.
func (p *Package) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrInvalid}
	}
	return p.readFile(fsPath(name))
}

// ReadDir implements fs.ReadDirFS.
//
// ReadDir returns the named directory's entries sorted by name, as the
// fs contract requires (the tree's own child order puts directories
// first).
func (p *Package) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	node, ok := p.root.Find(fsPath(name))
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	if !node.Dir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	return dirEntries(node), nil
}

func dirEntries(node *tree.Node) []fs.DirEntry {
	entries := make([]fs.DirEntry, len(node.Children))
	for i, child := range node.Children {
		entries[i] = fs.FileInfoToDirEntry(nodeInfo{node: child})
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries
}

// nodeInfo adapts a tree node to fs.FileInfo.
type nodeInfo struct {
	node *tree.Node
}

func (i nodeInfo) Name() string {
	if i.node.Name == "" {
		return "."
	}
	return i.node.Name
}

func (i nodeInfo) Size() int64 {
	return int64(min(i.node.Size, 1<<62)) //nolint:gosec // clamped above int64 range
}

func (i nodeInfo) Mode() fs.FileMode {
	if i.node.Dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}

func (i nodeInfo) ModTime() time.Time { return i.node.Modified }
func (i nodeInfo) IsDir() bool        { return i.node.Dir }
func (i nodeInfo) Sys() any           { return i.node }

// openFile is an opened file member with fully decoded content.
type openFile struct {
	node *tree.Node
	*bytes.Reader
}

func (f *openFile) Stat() (fs.FileInfo, error) { return nodeInfo{node: f.node}, nil }
func (f *openFile) Close() error               { return nil }

// openDir implements fs.ReadDirFile over a directory node.
type openDir struct {
	node   *tree.Node
	offset int
}

func (d *openDir) Stat() (fs.FileInfo, error) { return nodeInfo{node: d.node}, nil }
func (d *openDir) Close() error               { return nil }

func (d *openDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.node.Path, Err: fs.ErrInvalid}
}

func (d *openDir) ReadDir(n int) ([]fs.DirEntry, error) {
	entries := dirEntries(d.node)[d.offset:]
	if n <= 0 {
		d.offset += len(entries)
		return entries, nil
	}
	if len(entries) == 0 {
		return nil, io.EOF
	}
	if len(entries) > n {
		entries = entries[:n]
	}
	d.offset += len(entries)
	return entries, nil
}
