package cli

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vaultpass/passgen-go/internal/clipboard"
	"github.com/vaultpass/passgen-go/internal/config"
	"github.com/vaultpass/passgen-go/internal/crypto"
)

type fakeClipboard struct {
	writes []string
	err    error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, text)
	return nil
}

var generatedLine = regexp.MustCompile(`^Generated Password: (\S+) \(Strength: (Weak|Moderate|Strong|Very Strong)\)$`)

func testConfig() config.Config {
	return config.Config{
		TokenExpiry: time.Hour,
		Generator:   config.Generator{Length: 12, Uppercase: true, Numbers: true, SpecialChars: true},
	}
}

func execute(t *testing.T, cfg config.Config, clip clipboard.Writer, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(cfg, clip)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootPrintsAndCopiesSamePassword(t *testing.T) {
	clip := &fakeClipboard{}

	out, err := execute(t, testConfig(), clip)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	m := generatedLine.FindStringSubmatch(lines[0])
	require.NotNil(t, m, "unexpected first line %q", lines[0])
	require.Len(t, m[1], 12)
	require.Equal(t, crypto.Score(m[1]).String(), m[2])

	require.Equal(t, "Password copied to clipboard.", lines[1])
	require.Equal(t, []string{m[1]}, clip.writes)
}

func TestRootFlags(t *testing.T) {
	clip := &fakeClipboard{}

	_, err := execute(t, testConfig(), clip, "--length", "30", "--uppercase=false", "--special-chars=false")
	require.NoError(t, err)
	require.Len(t, clip.writes, 1)

	password := clip.writes[0]
	require.Len(t, password, 30)
	require.Empty(t, strings.Trim(password, "abcdefghijklmnopqrstuvwxyz0123456789"))
	require.True(t, strings.ContainsAny(password, "0123456789"))
}

func TestRootShortLengthRaised(t *testing.T) {
	clip := &fakeClipboard{}

	_, err := execute(t, testConfig(), clip, "-l", "5")
	require.NoError(t, err)
	require.Len(t, clip.writes, 1)
	require.Len(t, clip.writes[0], crypto.MinLength)
}

func TestRootClipboardFailureIsDistinct(t *testing.T) {
	clip := &fakeClipboard{err: clipboard.ErrUnavailable}

	out, err := execute(t, testConfig(), clip)
	require.Error(t, err)
	require.True(t, errors.Is(err, clipboard.ErrUnavailable))
	require.Contains(t, err.Error(), "copying to clipboard")
	require.Regexp(t, generatedLine, strings.Split(out, "\n")[0])
	require.NotContains(t, out, "copied to clipboard.")
}

func TestRootNoCopy(t *testing.T) {
	clip := &fakeClipboard{}

	out, err := execute(t, testConfig(), clip, "--no-copy")
	require.NoError(t, err)
	require.Empty(t, clip.writes)
	require.NotContains(t, out, "copied to clipboard")
}

func TestRootHash(t *testing.T) {
	clip := &fakeClipboard{}

	out, err := execute(t, testConfig(), clip, "--hash")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	hash, found := strings.CutPrefix(lines[1], "Argon2id Hash: ")
	require.True(t, found)

	match, err := crypto.VerifyPassword(clip.writes[0], hash)
	require.NoError(t, err)
	require.True(t, match)
}

func TestRootRejectsArgs(t *testing.T) {
	_, err := execute(t, testConfig(), &fakeClipboard{}, "extra")
	require.Error(t, err)
}

func TestScoreCommand(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{name: "argument", args: []string{"score", "Ab3!Ab3!Ab3!"}, want: "Strength: Very Strong (score 3/4)\n"},
		{name: "stdin", args: []string{"score"}, stdin: "aaaaaaaa\n", want: "Strength: Moderate (score 1/4)\n"},
		{name: "stdin without newline", args: []string{"score"}, stdin: "short", want: "Strength: Moderate (score 1/4)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := NewRootCommand(testConfig(), &fakeClipboard{})
			cmd.SetOut(&out)
			cmd.SetIn(strings.NewReader(tt.stdin))
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())
			require.Equal(t, tt.want, out.String())
		})
	}
}

func TestScoreCommandEmptyPassword(t *testing.T) {
	cmd := NewRootCommand(testConfig(), &fakeClipboard{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"score"})

	require.Error(t, cmd.Execute())
}

func TestTokenCommand(t *testing.T) {
	cfg := testConfig()
	cfg.TokenSecret = "test-secret"

	out, err := execute(t, cfg, &fakeClipboard{}, "token", "--subject", "ci-runner")
	require.NoError(t, err)

	claims, err := crypto.ValidateToken(strings.TrimSpace(out), "test-secret")
	require.NoError(t, err)
	require.Equal(t, "ci-runner", claims.Subject)
}

func TestTokenCommandRequiresSecret(t *testing.T) {
	_, err := execute(t, testConfig(), &fakeClipboard{}, "token", "--subject", "ci-runner")
	require.ErrorIs(t, err, ErrTokenSecretMissing)
}

func TestTokenCommandRequiresSubject(t *testing.T) {
	cfg := testConfig()
	cfg.TokenSecret = "test-secret"

	_, err := execute(t, cfg, &fakeClipboard{}, "token")
	require.Error(t, err)
}
