package claim

import "strings"

const MaxNoteLength = 500

type Note struct {
	value string
}

func NewNote(value string) Note {
	v := strings.TrimSpace(value)
	if len(v) > MaxNoteLength {
		v = v[:MaxNoteLength]
	}
	return Note{value: v}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
