package keyboard

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"

	"github.com/keymagic-rt/engine/pkg/codec"
	"github.com/keymagic-rt/engine/pkg/rules"
)

// On-disk layout (§4.2), all integers little-endian:
//
//	v1.5 header (20 bytes): magic[4] "KMKL", major u16, minor u16 (=5),
//	  stringCount u16, infoCount u16, ruleCount u16, trackCaps u8,
//	  autoBksp u8, eat u8, posBased u8, rightAlt u8, padding u8.
//	v1.4 header (18 bytes): same without rightAlt/padding; rightAlt
//	  defaults to true on upgrade.
//	v1.3 header (16 bytes): same as v1.4 without infoCount; infoCount:=0,
//	  rightAlt defaults to true.
//
//	Strings: stringCount entries of {length u16, length*u16 code units}.
//	Info (v1.4+ only): infoCount entries of {tag [4]byte, length u16,
//	  length bytes}.
//	Rules: ruleCount entries of {lhsWordLen u16, lhsWordLen*u16 opcodes,
//	  rhsWordLen u16, rhsWordLen*u16 opcodes}.

var magic = [4]byte{'K', 'M', 'K', 'L'}

const (
	sizeV15Header = 4 + 2*5 + 5 + 1 // magic + 5 u16 fields + 5 flag bytes + 1 padding byte
	sizeV14Header = 4 + 2*5 + 4     // magic + 5 u16 fields + 4 flag bytes (no rightAlt/infoCount has its own u16 already counted)
	sizeV13Header = 4 + 2*4 + 4     // magic + 4 u16 fields (no infoCount) + 4 flag bytes
)

// LoadFromFile reads and parses a keyboard file from disk.
func LoadFromFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ErrFileNotFound{Path: path, Err: err}
		}
		return nil, &ErrFileNotFound{Path: path, Err: err}
	}
	return LoadFromMemory(data)
}

// LoadFromMemory parses a keyboard file already held in memory.
func LoadFromMemory(data []byte) (*File, error) {
	r := &reader{data: data}

	opts, major, minor, stringCount, infoCount, ruleCount, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	strs, err := readStrings(r, stringCount)
	if err != nil {
		return nil, err
	}

	info := map[InfoTag][]byte{}
	if minor >= 4 {
		info, err = readInfo(r, infoCount)
		if err != nil {
			return nil, err
		}
	}

	raw, err := readRules(r, ruleCount, stringCount)
	if err != nil {
		return nil, err
	}

	return &File{
		MajorVersion: major,
		MinorVersion: minor,
		Options:      opts,
		Strings:      strs,
		Info:         info,
		Rules:        raw,
	}, nil
}

// Validate parses a candidate file purely to check validity, discarding
// the result. It never returns a usable *File on success; callers that
// also need the model should call LoadFromMemory directly.
func Validate(data []byte) error {
	_, err := LoadFromMemory(data)
	return err
}

// reader is a small cursor over the file bytes, tracking offset for
// diagnostics.
type reader struct {
	data []byte
	off  int
}

func (r *reader) remaining() int { return len(r.data) - r.off }

func (r *reader) readBytes(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, &ErrInvalidFormat{Offset: r.off, Reason: "unexpected end of file"}
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) readU8() (uint8, error) {
	b, err := r.readBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) readU16() (uint16, error) {
	b, err := r.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func readHeader(r *reader) (opts Options, major, minor, stringCount, infoCount, ruleCount int, err error) {
	start := r.off
	if m, e := r.readBytes(4); e != nil || !bytes.Equal(m, magic[:]) {
		r.off = start
		return opts, 0, 0, 0, 0, 0, &ErrInvalidFormat{Offset: start, Reason: "bad magic"}
	}

	maj, e := r.readU16()
	if e != nil {
		return opts, 0, 0, 0, 0, 0, e
	}
	min_, e := r.readU16()
	if e != nil {
		return opts, 0, 0, 0, 0, 0, e
	}
	if maj != 1 || (min_ != 3 && min_ != 4 && min_ != 5) {
		return opts, 0, 0, 0, 0, 0, &ErrUnsupportedVersion{Major: int(maj), Minor: int(min_)}
	}

	sc, e := r.readU16()
	if e != nil {
		return opts, 0, 0, 0, 0, 0, e
	}

	var ic uint16
	if min_ >= 4 {
		ic, e = r.readU16()
		if e != nil {
			return opts, 0, 0, 0, 0, 0, e
		}
	}

	rc, e := r.readU16()
	if e != nil {
		return opts, 0, 0, 0, 0, 0, e
	}

	trackCaps, e := r.readU8()
	if e != nil {
		return opts, 0, 0, 0, 0, 0, e
	}
	autoBksp, e := r.readU8()
	if e != nil {
		return opts, 0, 0, 0, 0, 0, e
	}
	eat, e := r.readU8()
	if e != nil {
		return opts, 0, 0, 0, 0, 0, e
	}
	posBased, e := r.readU8()
	if e != nil {
		return opts, 0, 0, 0, 0, 0, e
	}

	rightAlt := true
	if min_ >= 5 {
		ra, e := r.readU8()
		if e != nil {
			return opts, 0, 0, 0, 0, 0, e
		}
		rightAlt = ra != 0
		if _, e := r.readU8(); e != nil { // padding byte
			return opts, 0, 0, 0, 0, 0, e
		}
	}

	opts = Options{
		TrackCaps: trackCaps != 0,
		AutoBksp:  autoBksp != 0,
		Eat:       eat != 0,
		PosBased:  posBased != 0,
		RightAlt:  rightAlt,
	}
	return opts, int(maj), int(min_), int(sc), int(ic), int(rc), nil
}

// utf16Decoder decodes raw little-endian UTF-16 bytes read from the file
// into code units. Used instead of hand-rolled surrogate math for
// externally sourced bytes, per §4.1's validated-external-data contract.
var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func readStrings(r *reader, count int) ([]codec.UTF16, error) {
	decoder := utf16Decoder.NewDecoder()
	out := make([]codec.UTF16, count)
	for i := 0; i < count; i++ {
		wordOffset := r.off
		length, err := r.readU16()
		if err != nil {
			return nil, err
		}
		raw, err := r.readBytes(int(length) * 2)
		if err != nil {
			return nil, err
		}
		utf8Str, err := decoder.String(string(raw))
		if err != nil {
			return nil, &ErrInvalidFormat{Offset: wordOffset, Reason: "malformed UTF-16 string table entry"}
		}
		units, err := codec.DecodeUTF8(utf8Str)
		if err != nil {
			return nil, &ErrInvalidFormat{Offset: wordOffset, Reason: "malformed UTF-16 string table entry"}
		}
		out[i] = units
	}
	return out, nil
}

func readInfo(r *reader, count int) (map[InfoTag][]byte, error) {
	out := make(map[InfoTag][]byte, count)
	for i := 0; i < count; i++ {
		tagBytes, err := r.readBytes(4)
		if err != nil {
			return nil, err
		}
		var tag InfoTag
		copy(tag[:], tagBytes)

		length, err := r.readU16()
		if err != nil {
			return nil, err
		}
		data, err := r.readBytes(int(length))
		if err != nil {
			return nil, err
		}
		value := make([]byte, len(data))
		copy(value, data)
		out[tag] = value
	}
	return out, nil
}

func readRules(r *reader, count, stringCount int) ([]RawRule, error) {
	out := make([]RawRule, count)
	for i := 0; i < count; i++ {
		lhs, err := readOpcodeSide(r, stringCount)
		if err != nil {
			return nil, err
		}
		rhs, err := readOpcodeSide(r, stringCount)
		if err != nil {
			return nil, err
		}
		out[i] = RawRule{LHS: lhs, RHS: rhs}
	}
	return out, nil
}

func readOpcodeSide(r *reader, stringCount int) ([]uint16, error) {
	wordLen, err := r.readU16()
	if err != nil {
		return nil, err
	}
	side := make([]uint16, wordLen)
	base := r.off
	for i := 0; i < int(wordLen); i++ {
		v, err := r.readU16()
		if err != nil {
			return nil, err
		}
		side[i] = v
	}
	if err := validateOpcodeSide(base, side, stringCount); err != nil {
		return nil, err
	}
	return side, nil
}

// validateOpcodeSide walks one LHS/RHS opcode array enforcing the rules in
// §4.2: every opcode taking an operand must have one available, STRING
// must have its declared characters present, AND/ANY take no operand, and
// unknown opcodes or out-of-range string references invalidate the file.
func validateOpcodeSide(baseOffset int, side []uint16, stringCount int) error {
	i := 0
	for i < len(side) {
		op := rules.Opcode(side[i])
		wordOffset := baseOffset + i*2

		if !rules.IsKnown(op) {
			return &ErrInvalidFormat{Offset: wordOffset, Reason: fmt.Sprintf("unknown opcode 0x%04X", side[i])}
		}

		switch op {
		case rules.OpString:
			if i+1 >= len(side) {
				return &ErrInvalidFormat{Offset: wordOffset, Reason: "STRING missing length operand"}
			}
			length := int(side[i+1])
			if i+2+length > len(side) {
				return &ErrInvalidFormat{Offset: wordOffset, Reason: "STRING declared characters not present"}
			}
			i += 2 + length

		case rules.OpVariable:
			if i+1 >= len(side) {
				return &ErrInvalidFormat{Offset: wordOffset, Reason: "VARIABLE missing operand"}
			}
			idx := side[i+1]
			if idx < 1 || int(idx) > stringCount {
				return &ErrInvalidFormat{Offset: wordOffset, Reason: "VARIABLE string index out of range"}
			}
			i += 2

		case rules.OpReference, rules.OpPredefined, rules.OpModifier, rules.OpSwitch:
			if i+1 >= len(side) {
				return &ErrInvalidFormat{Offset: wordOffset, Reason: "opcode missing operand"}
			}
			i += 2

		case rules.OpAnd, rules.OpAny:
			i++

		default:
			return &ErrInvalidFormat{Offset: wordOffset, Reason: "unknown opcode"}
		}
	}
	return nil
}
