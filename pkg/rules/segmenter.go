package rules

import "github.com/keymagic-rt/engine/pkg/codec"

// Side distinguishes LHS from RHS segmentation, since a few opcodes are
// interpreted differently depending on which side they appear on
// (PREDEFINED, MODIFIER's indexed-lookup form).
type Side int

const (
	LHS Side = iota
	RHS
)

// segment walks one side's raw opcode array into a slice of Segments
// (§4.3's segmentation pass). It never errors: any structural problem
// that survives the loader's eager validation is handled defensively by
// dropping the offending word and continuing, per §7's propagation
// policy ("silently drop individual malformed segments").
func segment(side Side, ops []uint16) []Segment {
	var segs []Segment
	i := 0
	for i < len(ops) {
		op := Opcode(ops[i])
		switch op {
		case OpString:
			if i+1 >= len(ops) {
				i++
				continue
			}
			length := int(ops[i+1])
			if i+2+length > len(ops) {
				i = len(ops)
				continue
			}
			lit := make(codec.UTF16, length)
			copy(lit, ops[i+2:i+2+length])
			segs = append(segs, Segment{Kind: KindString, Literal: lit})
			i += 2 + length

		case OpVariable:
			if i+1 >= len(ops) {
				i++
				continue
			}
			v := ops[i+1]
			i += 2
			if i < len(ops) && Opcode(ops[i]) == OpModifier && i+1 < len(ops) {
				m := ops[i+1]
				i += 2
				switch Opcode(m) {
				case OpFlagAnyOf:
					segs = append(segs, Segment{Kind: KindAnyOfVariable, VarIndex: v})
				case OpFlagNAnyOf:
					segs = append(segs, Segment{Kind: KindNotAnyOfVariable, VarIndex: v})
				default:
					segs = append(segs, Segment{Kind: KindVariable, VarIndex: v, IndexRef: int(m)})
				}
			} else {
				segs = append(segs, Segment{Kind: KindVariable, VarIndex: v, IndexRef: NoIndexRef})
			}

		case OpAny:
			segs = append(segs, Segment{Kind: KindAny})
			i++

		case OpSwitch:
			if i+1 >= len(ops) {
				i++
				continue
			}
			segs = append(segs, Segment{Kind: KindState, StateID: int(ops[i+1])})
			i += 2

		case OpAnd:
			i++
			var vks []uint16
			for i < len(ops) && Opcode(ops[i]) == OpPredefined && i+1 < len(ops) {
				vks = append(vks, ops[i+1])
				i += 2
			}
			if len(vks) > 0 {
				segs = append(segs, Segment{Kind: KindVirtualKey, VKList: vks})
			}

		case OpPredefined:
			// A PREDEFINED not preceded by AND (the AND case above
			// consumes its own run). Legal as RHS NULL (value==1);
			// otherwise recovered as a single-key VirtualKey (§4.3).
			if i+1 >= len(ops) {
				i++
				continue
			}
			v := ops[i+1]
			i += 2
			if side == RHS && v == 1 {
				segs = append(segs, Segment{Kind: KindNull})
			} else {
				segs = append(segs, Segment{Kind: KindVirtualKey, VKList: []uint16{v}})
			}

		case OpReference:
			if i+1 >= len(ops) {
				i++
				continue
			}
			segs = append(segs, Segment{Kind: KindReference, RefIndex: int(ops[i+1])})
			i += 2

		default:
			// Unknown opcode surviving past the loader (shouldn't
			// happen for a file that loaded successfully); skip one
			// word defensively.
			i++
		}
	}
	return segs
}
