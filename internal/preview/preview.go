// Package preview builds the read-only right-hand-side rendering of
// whatever the selected entry is: syntax-highlighted source, a directory's
// own tree, a binary hex dump, plain text, or an image rendered to the
// terminal — picking the cheapest variant that's actually informative
// rather than always shelling out to a pager.
package preview

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/blacktop/go-termimg"

	"github.com/qkzk/dired/internal/fileinfo"
	"github.com/qkzk/dired/internal/tree"
	"github.com/qkzk/dired/internal/users"
)

// Variant tags which kind of content a Preview holds.
type Variant int

const (
	VariantEmpty Variant = iota
	VariantSyntaxed
	VariantBinary
	VariantText
	VariantImage
	VariantLog // help text / last command's stdout
)

// maxPreviewBytes bounds how much of a file is read, so previewing a
// multi-gigabyte log doesn't stall the event loop.
const maxPreviewBytes = 256 * 1024

var imageExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "bmp": true, "webp": true,
}

// Preview is an already-rendered block of preview content plus the path it
// was built from, so the caller can tell whether a stale Preview still
// matches the current selection.
type Preview struct {
	Path    string
	Variant Variant
	Lines   []string // pre-split, ready for the renderer's viewport
}

// Empty returns the placeholder shown when nothing is selected or preview
// mode was requested for a directory's ".." entry.
func Empty() *Preview {
	return &Preview{Variant: VariantEmpty}
}

// FromLog wraps arbitrary text (help content, a command's captured stdout)
// as a preview without touching the filesystem.
func FromLog(text string) *Preview {
	return &Preview{Variant: VariantLog, Lines: strings.Split(text, "\n")}
}

// Build inspects path and produces the cheapest informative preview:
// images render through go-termimg, source files are syntax highlighted by
// chroma using its lexer-by-filename heuristic, binaries degrade to a hex
// dump of the first bytes, and everything else is shown as plain text.
func Build(path string, fi fileinfo.FileInfo, width int) (*Preview, error) {
	if fi.Kind == fileinfo.KindDirectory {
		if fi.Name == ".." {
			return Empty(), nil
		}
		t, err := tree.Build(path, users.Shared(), false, 0)
		if err != nil {
			return nil, err
		}
		rows, _ := t.Flatten()
		lines := make([]string, len(rows))
		for i, r := range rows {
			lines[i] = r.Prefix + r.Node.Info.Name
		}
		return &Preview{Path: path, Variant: VariantText, Lines: lines}, nil
	}
	if imageExtensions[fi.Extension] {
		return buildImage(path, width)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, maxPreviewBytes)
	n, _ := io.ReadFull(f, buf)
	buf = buf[:n]

	if looksBinary(buf) {
		return buildHexDump(path, buf), nil
	}
	return buildText(path, buf)
}

func buildImage(path string, width int) (*Preview, error) {
	img, err := termimg.New(path)
	if err != nil {
		return nil, err
	}
	rendered, err := img.Render()
	if err != nil {
		return nil, err
	}
	return &Preview{Path: path, Variant: VariantImage, Lines: strings.Split(rendered, "\n")}, nil
}

func buildText(path string, content []byte) (*Preview, error) {
	var out strings.Builder
	err := quick.Highlight(&out, string(content), lexerNameFor(path), "terminal256", "monokai")
	if err != nil {
		return &Preview{Path: path, Variant: VariantText, Lines: strings.Split(string(content), "\n")}, nil
	}
	return &Preview{Path: path, Variant: VariantSyntaxed, Lines: strings.Split(out.String(), "\n")}, nil
}

func lexerNameFor(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return filepath.Base(path)
	}
	return "." + ext
}

func buildHexDump(path string, content []byte) *Preview {
	var lines []string
	for off := 0; off < len(content); off += 16 {
		end := off + 16
		if end > len(content) {
			end = len(content)
		}
		ascii := make([]byte, 0, 16)
		for _, b := range content[off:end] {
			if b < 0x20 || b > 0x7e {
				b = '.'
			}
			ascii = append(ascii, b)
		}
		lines = append(lines, fmt.Sprintf("%08x  %-47s  |%s|", off, fmt.Sprintf("% x", content[off:end]), ascii))
	}
	return &Preview{Path: path, Variant: VariantBinary, Lines: lines}
}

// looksBinary applies the classic "contains a NUL byte in the first chunk"
// heuristic used by grep/git/most pagers.
func looksBinary(content []byte) bool {
	limit := len(content)
	if limit > 8000 {
		limit = 8000
	}
	for _, b := range content[:limit] {
		if b == 0 {
			return true
		}
	}
	return false
}
