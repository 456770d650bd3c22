// Package keyboard implements the binary keyboard-file loader (component
// C2): it parses the three supported on-disk layouts (v1.3, v1.4, v1.5) of
// a ".km2" keyboard file into an in-memory, immutable File model that the
// rule preprocessor, matcher and output generator share read-only.
package keyboard

import "github.com/keymagic-rt/engine/pkg/codec"

// Options mirrors the layout-option flags carried in the header. RightAlt
// defaults to 1 (true) when the on-disk header predates the field.
type Options struct {
	TrackCaps bool
	AutoBksp  bool
	Eat       bool
	PosBased  bool
	RightAlt  bool
}

// RawRule is one (lhs_opcodes, rhs_opcodes) pair exactly as stored on disk:
// little-endian u16 arrays, not yet segmented.
type RawRule struct {
	LHS []uint16
	RHS []uint16
}

// File is the fully parsed, immutable in-memory keyboard model. Once
// loaded it is never mutated; the engine and matcher only ever read it.
type File struct {
	MajorVersion int
	MinorVersion int // 3, 4, or 5
	Options      Options

	// Strings is the 0-based backing slice for the file's 1-based string
	// table; index i holds string-table entry i+1.
	Strings []codec.UTF16

	// Info holds the v1.4+ info-table entries keyed by their raw 4-byte
	// tag, interpreted as UTF-8 for known text tags. Absent (v1.3) files
	// have an empty map.
	Info map[InfoTag][]byte

	Rules []RawRule
}

// InfoTag is a 4-byte info-table tag, stored as a fixed-size array so it
// can be used as a map key directly.
type InfoTag [4]byte

// Known info tags, per §3.
var (
	TagName        = InfoTag{'n', 'a', 'm', 'e'}
	TagDescription = InfoTag{'d', 'e', 's', 'c'}
	TagHotkey      = InfoTag{'h', 'k', 'e', 'y'}
	TagIcon        = InfoTag{'i', 'c', 'o', 'n'}
	TagFontFamily  = InfoTag{'f', 'o', 'n', 't'}
)

// Name returns the info table's name tag decoded as UTF-8, or "" if absent.
func (f *File) Name() string { return string(f.Info[TagName]) }

// Description returns the info table's description tag, or "" if absent.
func (f *File) Description() string { return string(f.Info[TagDescription]) }

// Hotkey returns the info table's textual hotkey tag, or "" if absent.
func (f *File) Hotkey() string { return string(f.Info[TagHotkey]) }

// FontFamily returns the info table's font-family tag, or "" if absent.
func (f *File) FontFamily() string { return string(f.Info[TagFontFamily]) }

// IconData returns the info table's raw icon bytes, or nil if absent.
func (f *File) IconData() []byte { return f.Info[TagIcon] }

// StringAt resolves a 1-based string-table index. Out-of-range indices
// return nil; the loader's validator rejects files with out-of-range
// references at load time, so in a successfully loaded file this only
// happens if a caller passes an index from somewhere else entirely.
func (f *File) StringAt(idx uint16) codec.UTF16 {
	i := int(idx) - 1
	if i < 0 || i >= len(f.Strings) {
		return nil
	}
	return f.Strings[i]
}
