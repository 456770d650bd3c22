package keyboard

import "fmt"

// Error taxonomy for the loader (§7): FileNotFound, InvalidFormat,
// UnsupportedVersion.

// ErrFileNotFound wraps the underlying os error for a missing/unreadable
// keyboard file.
type ErrFileNotFound struct {
	Path string
	Err  error
}

func (e *ErrFileNotFound) Error() string {
	return fmt.Sprintf("keyboard: file not found: %s: %v", e.Path, e.Err)
}

func (e *ErrFileNotFound) Unwrap() error { return e.Err }

// ErrUnsupportedVersion is returned when the magic matches but the major
// or minor version is not one this loader understands.
type ErrUnsupportedVersion struct {
	Major, Minor int
}

func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("keyboard: unsupported version %d.%d", e.Major, e.Minor)
}

// ErrInvalidFormat is returned for any structural violation of the binary
// layout (bad magic, truncated section, unknown opcode, out-of-range
// string reference, ...). Offset preserves the byte offset at which the
// violation was detected, for diagnostics.
type ErrInvalidFormat struct {
	Offset int
	Reason string
}

func (e *ErrInvalidFormat) Error() string {
	return fmt.Sprintf("keyboard: invalid format at offset %d: %s", e.Offset, e.Reason)
}
