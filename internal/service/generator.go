package service

import (
	"errors"
	"fmt"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
)

// MaxRequestLength caps the length a caller may ask for through the service.
const MaxRequestLength = 4096

var (
	ErrLengthTooLong    = fmt.Errorf("password length must be at most %d", MaxRequestLength)
	ErrPasswordRequired = errors.New("password is required")
)

// PasswordGenerator produces a password for the given options.
type PasswordGenerator interface {
	Generate(opts crypto.Options) (string, error)
}

// GeneratorService handles password generation and scoring.
type GeneratorService struct {
	generator PasswordGenerator
	defaults  crypto.Options
}

// NewGeneratorService creates a GeneratorService that fills unset request fields from defaults.
func NewGeneratorService(defaults crypto.Options) *GeneratorService {
	return &GeneratorService{
		generator: &crypto.Generator{},
		defaults:  defaults,
	}
}

// WithGenerator replaces the password source. The replacement must draw from a CSPRNG.
func (s *GeneratorService) WithGenerator(g PasswordGenerator) *GeneratorService {
	s.generator = g
	return s
}

// Defaults returns the options applied to unset request fields.
func (s *GeneratorService) Defaults() crypto.Options {
	return s.defaults
}

// Generate produces a password for the request and scores it.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	opts := crypto.Options{
		Length:       req.Length,
		Uppercase:    boolOrDefault(req.Uppercase, s.defaults.Uppercase),
		Numbers:      boolOrDefault(req.Numbers, s.defaults.Numbers),
		SpecialChars: boolOrDefault(req.SpecialChars, s.defaults.SpecialChars),
	}

	if opts.Length == 0 {
		opts.Length = s.defaults.Length
	}
	if opts.Length > MaxRequestLength {
		return model.GenerateResponse{}, ErrLengthTooLong
	}

	password, err := s.generator.Generate(opts)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	resp := model.GenerateResponse{
		Password: password,
		Length:   len(password),
		Strength: crypto.Score(password),
	}

	if req.Hash {
		hash, err := crypto.HashPassword(password)
		if err != nil {
			return model.GenerateResponse{}, fmt.Errorf("hashing password: %w", err)
		}
		resp.Hash = hash
	}

	return resp, nil
}

// Score rates an arbitrary password.
func (s *GeneratorService) Score(req model.StrengthRequest) (model.StrengthResponse, error) {
	if req.Password == "" {
		return model.StrengthResponse{}, ErrPasswordRequired
	}

	return model.StrengthResponse{
		Strength: crypto.Score(req.Password),
		Score:    crypto.Points(req.Password),
	}, nil
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
