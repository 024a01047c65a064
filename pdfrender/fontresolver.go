package pdfrender

import (
	"os"
	"path/filepath"
)

// FontResolver is the capability the renderer is given at construction time
// so platform font paths never end up hard-coded in the layout code itself.
type FontResolver interface {
	// Resolve returns a path to a TrueType font covering the full Polish
	// alphabet, or "" if none of its candidates exist, in which case the
	// renderer falls back to gofpdf's built-in core font.
	Resolve() string
}

// PlatformFontResolver probes a fixed candidate list, falling back to a
// monospace system font rather than failing outright.
type PlatformFontResolver struct {
	Candidates []string
}

// DefaultFontResolver probes the common Linux/macOS/Windows DejaVu/Arial
// install locations, in order, before the final monospace fallback.
func DefaultFontResolver() PlatformFontResolver {
	return PlatformFontResolver{Candidates: []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/Library/Fonts/Arial Unicode.ttf",
		"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
		`C:\Windows\Fonts\arial.ttf`,
		"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
	}}
}

// Resolve returns the first existing candidate, or "".
func (r PlatformFontResolver) Resolve() string {
	for _, c := range r.Candidates {
		if c == "" {
			continue
		}
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return filepath.Clean(c)
		}
	}
	return ""
}
