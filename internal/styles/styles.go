// Package styles computes the display style for a file row from its kind and
// extension: a narrow FileInfo -> lipgloss.Style mapping, not a
// general-purpose theme catalog.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/qkzk/dired/internal/fileinfo"
)

// Palette is the minimal set of colors the renderer needs. Process-wide,
// set once at startup, read-only thereafter. internal/session installs
// Default() there; config.yaml's colors section is not applied to it.
type Palette struct {
	Directory   lipgloss.Color
	Executable  lipgloss.Color
	Symlink     lipgloss.Color
	BrokenLink  lipgloss.Color
	Device      lipgloss.Color
	Socket      lipgloss.Color
	Normal      lipgloss.Color
	Selected    lipgloss.Style
	Flagged     lipgloss.Style
	ByExtension map[string]lipgloss.Color
}

// Default returns a reasonable built-in palette, the one installed at
// startup whatever config.yaml contains.
func Default() Palette {
	return Palette{
		Directory:  lipgloss.Color("33"),
		Executable: lipgloss.Color("40"),
		Symlink:    lipgloss.Color("44"),
		BrokenLink: lipgloss.Color("160"),
		Device:     lipgloss.Color("214"),
		Socket:     lipgloss.Color("170"),
		Normal:     lipgloss.Color("252"),
		Selected:   lipgloss.NewStyle().Reverse(true),
		Flagged:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		ByExtension: map[string]lipgloss.Color{
			"md":   lipgloss.Color("117"),
			"go":   lipgloss.Color("81"),
			"rs":   lipgloss.Color("208"),
			"py":   lipgloss.Color("220"),
			"json": lipgloss.Color("228"),
			"yaml": lipgloss.Color("228"),
			"yml":  lipgloss.Color("228"),
			"zip":  lipgloss.Color("203"),
			"gz":   lipgloss.Color("203"),
			"tar":  lipgloss.Color("203"),
			"png":  lipgloss.Color("135"),
			"jpg":  lipgloss.Color("135"),
			"jpeg": lipgloss.Color("135"),
			"gif":  lipgloss.Color("135"),
		},
	}
}

var shared = Default()

// SetShared installs the process-wide palette, e.g. after parsing config.yaml.
// Must be called once before the event loop starts.
func SetShared(p Palette) { shared = p }

// Shared returns the process-wide palette.
func Shared() Palette { return shared }

// ForFile returns the base foreground style for a FileInfo, ignoring
// selection/flagged state.
func ForFile(fi fileinfo.FileInfo, p Palette) lipgloss.Style {
	color := p.Normal
	switch fi.Kind {
	case fileinfo.KindDirectory:
		color = p.Directory
	case fileinfo.KindSymlink:
		if fi.SymlinkValid {
			color = p.Symlink
		} else {
			color = p.BrokenLink
		}
	case fileinfo.KindBlockDevice, fileinfo.KindCharDevice:
		color = p.Device
	case fileinfo.KindSocket, fileinfo.KindFifo:
		color = p.Socket
	default:
		if c, ok := p.ByExtension[fi.Extension]; ok {
			color = c
		} else if fi.Mode.Perm()&0o111 != 0 {
			color = p.Executable
		}
	}
	return lipgloss.NewStyle().Foreground(color)
}

// RowStyle composes the base file style with selection/flagged modifiers:
// selected rows are reverse video, flagged rows are bold with a leading
// glyph handled by the caller.
func RowStyle(fi fileinfo.FileInfo, p Palette, selected, flagged bool) lipgloss.Style {
	style := ForFile(fi, p)
	if flagged {
		style = style.Bold(true)
	}
	if selected {
		style = style.Reverse(true)
	}
	return style
}

// SyntaxTheme names the chroma style used by the Syntaxed preview variant.
func SyntaxTheme() string { return "monokai" }
