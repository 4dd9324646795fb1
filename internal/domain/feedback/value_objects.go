package feedback

import (
	"strings"

	"foodbridge/internal/pkg/errs"
)

const MaxCommentLength = 1000

var (
	ErrInvalidRating  = errs.New("rating must be between 1 and 5")
	ErrCommentTooLong = errs.New("comment too long")
)

type Rating struct {
	value int
}

func NewRating(v int) (Rating, error) {
	if v < 1 || v > 5 {
		return Rating{}, ErrInvalidRating
	}
	return Rating{value: v}, nil
}

func (r Rating) Value() int { return r.value }

type Comment struct {
	text string
}

// NewComment accepts an empty comment; feedback text is optional.
func NewComment(s string) (Comment, error) {
	t := strings.TrimSpace(s)
	if len(t) > MaxCommentLength {
		return Comment{}, ErrCommentTooLong
	}
	return Comment{text: t}, nil
}

func (c Comment) String() string { return c.text }
func (c Comment) IsEmpty() bool  { return c.text == "" }
