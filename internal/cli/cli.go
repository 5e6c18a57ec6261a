// Package cli implements the passgen command line: generate a password, score it,
// print both and copy the password to the clipboard.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vaultpass/passgen-go/internal/clipboard"
	"github.com/vaultpass/passgen-go/internal/config"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/service"
)

var ErrTokenSecretMissing = errors.New("TOKEN_SECRET is not set")

// Runner performs one generate, score, print, copy cycle.
type Runner struct {
	Service   *service.GeneratorService
	Clipboard clipboard.Writer
	Out       io.Writer
}

// Run generates a password for req, prints it with its strength and copies it to the clipboard.
// A clipboard failure is returned after the password has been printed.
func (r Runner) Run(req model.GenerateRequest) error {
	resp, err := r.Service.Generate(req)
	if err != nil {
		return fmt.Errorf("generating password: %w", err)
	}

	fmt.Fprintf(r.Out, "Generated Password: %s (Strength: %s)\n", resp.Password, resp.Strength)
	if resp.Hash != "" {
		fmt.Fprintf(r.Out, "Argon2id Hash: %s\n", resp.Hash)
	}

	if err := r.Clipboard.WriteAll(resp.Password); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	if _, discarded := r.Clipboard.(clipboard.Discard); !discarded {
		fmt.Fprintln(r.Out, "Password copied to clipboard.")
	}

	return nil
}

// NewRootCommand builds the passgen command tree. Flag defaults come from cfg.
func NewRootCommand(cfg config.Config, clip clipboard.Writer) *cobra.Command {
	svc := service.NewGeneratorService(cfg.Generator.Options())
	defaults := svc.Defaults()

	var (
		length       int
		uppercase    bool
		numbers      bool
		specialChars bool
		hash         bool
		noCopy       bool
	)

	root := &cobra.Command{
		Use:   "passgen",
		Short: "Generate a random password, rate it and copy it to the clipboard",
		Long: fmt.Sprintf(`passgen generates one password from lowercase letters plus the enabled classes,
prints it with a strength rating and copies it to the clipboard.

Lengths below %d are raised to %d.`, crypto.MinLength, crypto.MinLength),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := Runner{Service: svc, Clipboard: clip, Out: cmd.OutOrStdout()}
			if noCopy {
				runner.Clipboard = clipboard.Discard{}
			}
			return runner.Run(model.GenerateRequest{
				Length:       length,
				Uppercase:    &uppercase,
				Numbers:      &numbers,
				SpecialChars: &specialChars,
				Hash:         hash,
			})
		},
	}

	flags := root.Flags()
	flags.IntVarP(&length, "length", "l", defaults.Length, "password length")
	flags.BoolVarP(&uppercase, "uppercase", "u", defaults.Uppercase, "require uppercase letters")
	flags.BoolVarP(&numbers, "numbers", "n", defaults.Numbers, "require digits")
	flags.BoolVarP(&specialChars, "special-chars", "s", defaults.SpecialChars, "require punctuation characters")
	flags.BoolVar(&hash, "hash", false, "also print an Argon2id hash of the password")
	flags.BoolVar(&noCopy, "no-copy", false, "print only, do not touch the clipboard")

	root.AddCommand(newScoreCommand(svc), newTokenCommand(cfg))
	return root
}

func newScoreCommand(svc *service.GeneratorService) *cobra.Command {
	return &cobra.Command{
		Use:   "score [PASSWORD]",
		Short: "Rate the strength of a password (read from stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("reading password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			resp, err := svc.Score(model.StrengthRequest{Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Strength: %s (score %d/4)\n", resp.Strength, resp.Score)
			return nil
		},
	}
}

func newTokenCommand(cfg config.Config) *cobra.Command {
	var (
		subject string
		expiry  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token for the passgen HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.TokenSecret == "" {
				return ErrTokenSecretMissing
			}
			token, err := crypto.GenerateToken(subject, cfg.TokenSecret, expiry)
			if err != nil {
				return fmt.Errorf("issuing token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "name of the client the token is issued to")
	cmd.Flags().DurationVar(&expiry, "expiry", cfg.TokenExpiry, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
