package model

import "github.com/vaultpass/passgen-go/internal/crypto"

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> configured default) and explicit false.
type GenerateRequest struct {
	Length       int   `json:"length"`
	Uppercase    *bool `json:"uppercase"`
	Numbers      *bool `json:"numbers"`
	SpecialChars *bool `json:"special_chars"`
	Hash         bool  `json:"hash"`
}

// GenerateResponse represents a generated password with its strength.
type GenerateResponse struct {
	Password string          `json:"password"`
	Length   int             `json:"length"`
	Strength crypto.Strength `json:"strength"`
	Hash     string          `json:"hash,omitempty"`
}

// StrengthRequest asks for the strength of an arbitrary password.
type StrengthRequest struct {
	Password string `json:"password"`
}

// StrengthResponse carries the strength label and the raw 0-4 point total.
type StrengthResponse struct {
	Strength crypto.Strength `json:"strength"`
	Score    int             `json:"score"`
}
