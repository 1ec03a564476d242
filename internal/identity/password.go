package identity

import (
	"fmt"
	"math/rand/v2"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	passwordLength = 16

	lowerChars  = "abcdefghijkmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitChars  = "23456789"
	symbolChars = "!@#$%&*?-_"
)

// GeneratePassword returns a random password of 16 characters holding at least one
// lowercase letter, uppercase letter, digit and symbol.
func GeneratePassword() (string, error) {
	classes := []string{lowerChars, upperChars, digitChars, symbolChars}
	all := lowerChars + upperChars + digitChars + symbolChars

	var out []byte
	for _, alphabet := range classes {
		c, err := gonanoid.Generate(alphabet, 1)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		out = append(out, c...)
	}
	rest, err := gonanoid.Generate(all, passwordLength-len(classes))
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	out = append(out, rest...)

	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return string(out), nil
}
