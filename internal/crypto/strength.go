package crypto

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Strength is a qualitative password strength level, ordered from weakest to strongest.
type Strength int

const (
	Weak Strength = iota
	Moderate
	Strong
	VeryStrong
)

var strengthLabels = [...]string{
	Weak:       "Weak",
	Moderate:   "Moderate",
	Strong:     "Strong",
	VeryStrong: "Very Strong",
}

// String returns the human-readable label.
func (s Strength) String() string {
	if s < Weak || s > VeryStrong {
		return fmt.Sprintf("Strength(%d)", int(s))
	}
	return strengthLabels[s]
}

// MarshalText encodes the strength as its label.
func (s Strength) MarshalText() ([]byte, error) {
	if s < Weak || s > VeryStrong {
		return nil, fmt.Errorf("invalid strength %d", int(s))
	}
	return []byte(strengthLabels[s]), nil
}

// UnmarshalText decodes a label produced by MarshalText.
func (s *Strength) UnmarshalText(text []byte) error {
	for i, label := range strengthLabels {
		if string(text) == label {
			*s = Strength(i)
			return nil
		}
	}
	return fmt.Errorf("unknown strength %q", text)
}

// Points returns the raw heuristic score (0-4): one point each for a length of at least 8,
// a digit, a punctuation character, and more distinct characters than half the length.
func Points(password string) int {
	length := utf8.RuneCountInString(password)
	points := 0

	if length >= 8 {
		points++
	}
	if strings.IndexFunc(password, unicode.IsDigit) >= 0 {
		points++
	}
	if strings.ContainsAny(password, punctuationChars) {
		points++
	}

	distinct := make(map[rune]struct{}, length)
	for _, r := range password {
		distinct[r] = struct{}{}
	}
	if 2*len(distinct) > length {
		points++
	}

	return points
}

// Score classifies a password. The point total saturates at VeryStrong, so 3 and 4 points rank the same.
func Score(password string) Strength {
	return Strength(min(Points(password), int(VeryStrong)))
}
