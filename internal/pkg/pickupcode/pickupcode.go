package pickupcode

import gonanoid "github.com/matoous/go-nanoid/v2"

// Ambiguous characters (0/O, 1/I/l) are excluded so codes survive being
// read aloud at pickup.
const (
	codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"
	codeLength   = 8
)

type Generator interface {
	Generate() string
}

type NanoidGenerator struct{}

func NewGenerator() Generator {
	return &NanoidGenerator{}
}

func (g *NanoidGenerator) Generate() string {
	return gonanoid.MustGenerate(codeAlphabet, codeLength)
}
