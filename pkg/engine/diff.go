package engine

import "github.com/keymagic-rt/engine/pkg/codec"

// ActionType classifies the edit an applied key event produces (§4.7).
type ActionType int

const (
	ActionNone ActionType = iota
	ActionInsert
	ActionDelete
	ActionDeleteAndInsert
)

func (a ActionType) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionInsert:
		return "Insert"
	case ActionDelete:
		return "Delete"
	case ActionDeleteAndInsert:
		return "DeleteAndInsert"
	default:
		return "Unknown"
	}
}

// Action is the result of one process_key call: what to delete/insert in
// the host document, and the full new composing text (always emitted as
// UTF-8, per §4.7).
type Action struct {
	Type        ActionType
	Insert      string
	DeleteCount int
	Composing   string
}

// diff computes the minimal edit action turning old into next (§4.7):
// the longest common prefix determines how much of old to delete and
// what suffix of next to insert.
func diff(old, next codec.UTF16) Action {
	k := codec.CommonPrefixLen(old, next)
	deleteCount := len(old) - k
	ins := next[k:]

	composing := codec.EncodeUTF8(next)

	switch {
	case deleteCount == 0 && len(ins) == 0:
		return Action{Type: ActionNone, Composing: composing}
	case deleteCount > 0 && len(ins) == 0:
		return Action{Type: ActionDelete, DeleteCount: deleteCount, Composing: composing}
	case deleteCount == 0 && len(ins) > 0:
		return Action{Type: ActionInsert, Insert: codec.EncodeUTF8(ins), Composing: composing}
	default:
		return Action{
			Type:        ActionDeleteAndInsert,
			Insert:      codec.EncodeUTF8(ins),
			DeleteCount: deleteCount,
			Composing:   composing,
		}
	}
}
