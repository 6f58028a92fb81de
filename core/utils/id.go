package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const referenceAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// GenerateReferenceCode returns a short human-facing code printed on booking
// confirmations. The alphabet skips easily confused glyphs (I, L, O, U).
func GenerateReferenceCode() string {
	id, err := gonanoid.Generate(referenceAlphabet, 8)
	if err != nil {
		return ""
	}
	return id
}
