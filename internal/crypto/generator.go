package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"
)

const (
	lowercaseChars   = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars      = "0123456789"
	punctuationChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	// MinLength is the policy floor for generated passwords. Shorter requests are raised to it.
	MinLength = 12

	// DefaultMaxAttempts bounds the rejection-sampling loop.
	DefaultMaxAttempts = 1000
)

// ErrAttemptsExhausted is returned when no candidate satisfied the requested classes within the attempt cap.
var ErrAttemptsExhausted = errors.New("password generation exhausted its attempts")

// Options configures the password generator. Lowercase letters are always included.
type Options struct {
	Length       int
	Uppercase    bool
	Numbers      bool
	SpecialChars bool
}

// DefaultOptions returns the defaults: 12 characters with every class enabled.
func DefaultOptions() Options {
	return Options{
		Length:       MinLength,
		Uppercase:    true,
		Numbers:      true,
		SpecialChars: true,
	}
}

// Generator draws passwords from a cryptographically secure source.
type Generator struct {
	// Reader is the random source. Nil means crypto/rand.Reader. Anything else must also be a CSPRNG.
	Reader io.Reader
	// Logger receives the length-floor notice. Nil means slog.Default().
	Logger *slog.Logger
	// MaxAttempts caps full redraws. Zero means DefaultMaxAttempts.
	MaxAttempts int
}

var defaultGenerator = &Generator{}

// Generate creates a password with the default crypto/rand backed generator.
func Generate(opts Options) (string, error) {
	return defaultGenerator.Generate(opts)
}

// Generate creates a random password from lowercase letters plus every class enabled in opts.
// The whole string is redrawn until each enabled class appears at least once.
func (g *Generator) Generate(opts Options) (string, error) {
	length := opts.Length
	if length < MinLength {
		g.logger().Info("increasing password length to policy minimum",
			"requested", opts.Length, "length", MinLength)
		length = MinLength
	}

	pool := lowercaseChars
	var requiredSets []string

	if opts.Uppercase {
		pool += uppercaseChars
		requiredSets = append(requiredSets, uppercaseChars)
	}
	if opts.Numbers {
		pool += numberChars
		requiredSets = append(requiredSets, numberChars)
	}
	if opts.SpecialChars {
		pool += punctuationChars
		requiredSets = append(requiredSets, punctuationChars)
	}

	result := make([]byte, length)
	for attempt := 0; attempt < g.maxAttempts(); attempt++ {
		for i := range result {
			ch, err := g.randChar(pool)
			if err != nil {
				return "", err
			}
			result[i] = ch
		}

		if containsAll(string(result), requiredSets) {
			return string(result), nil
		}
	}

	return "", fmt.Errorf("%w: %d attempts for length %d", ErrAttemptsExhausted, g.maxAttempts(), length)
}

// randChar picks a uniformly random character from charset.
func (g *Generator) randChar(charset string) (byte, error) {
	r := g.Reader
	if r == nil {
		r = rand.Reader
	}
	n, err := rand.Int(r, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return charset[n.Int64()], nil
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

func (g *Generator) maxAttempts() int {
	if g.MaxAttempts > 0 {
		return g.MaxAttempts
	}
	return DefaultMaxAttempts
}

func containsAll(s string, sets []string) bool {
	for _, set := range sets {
		if !strings.ContainsAny(s, set) {
			return false
		}
	}
	return true
}
