package textproc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runProcessor(t *testing.T, process func(src, dst string) error, input string) string {
	t.Helper()

	dir := t.TempDir()
	src := filepath.Join(dir, "input.txt")
	dst := filepath.Join(dir, "output.txt")
	require.NoError(t, os.WriteFile(src, []byte(input), 0644))

	require.NoError(t, process(src, dst))

	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	return string(out)
}

func TestClean(t *testing.T) {
	input := "b.com extra fields\na.com\nb.com\n\n.c.com\n"
	out := runProcessor(t, Clean, input)

	assert.Equal(t, "a.com\nb.com\nc.com\n", out)
}

func TestSmartCleanGroupsByMainDomain(t *testing.T) {
	input := strings.Join([]string{
		"mail.google.com",
		"docs.google.com",
		"google.com",
		"example.org",
	}, "\n")
	out := runProcessor(t, SmartClean, input)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "google.com (3)", lines[0])
	assert.Equal(t, "example.org (1)", lines[1])

	assert.Contains(t, out, "=== STATISTICS ===")
	assert.Contains(t, out, "Total unique lines: 4")
	assert.Contains(t, out, "Unique main domains: 2")
	assert.Contains(t, out, "Most frequent domain: google.com (3 times)")
}

func TestSmartCleanTiesSortedByName(t *testing.T) {
	out := runProcessor(t, SmartClean, "b.com\na.com\n")

	lines := strings.Split(out, "\n")
	assert.Equal(t, "a.com (1)", lines[0])
	assert.Equal(t, "b.com (1)", lines[1])
}

func TestDedup(t *testing.T) {
	input := strings.Join([]string{
		"URL: https://www.example.com/login",
		"USER: alice@mail.com",
		"PASS: secret1",
		"URL: https://other.net/signin",
		"USER: alice@mail.com",
		"PASS: secret1",
		"USER: bob@mail.com",
		"PASS: secret2",
		"USER: not-an-email",
		"PASS: ignored",
	}, "\n")
	out := runProcessor(t, Dedup, input)

	assert.Contains(t, out, "=== USERS ===")
	assert.Contains(t, out, "alice@mail.com (domains: example.com, other.net)")
	assert.Contains(t, out, "bob@mail.com (domains: other.net)")
	assert.NotContains(t, out, "not-an-email")

	assert.Contains(t, out, "=== PASSWORDS (2 unique) ===")
	assert.Contains(t, out, "secret1")
	assert.Contains(t, out, "secret2")
	assert.NotContains(t, out, "ignored")

	assert.Contains(t, out, "Total users: 2")
	assert.Contains(t, out, "Total passwords: 2")
	assert.Contains(t, out, "Total records: 2")
}

func TestDedupUserWithoutURL(t *testing.T) {
	out := runProcessor(t, Dedup, "USER: carol@mail.com\nPASS: pw\n")

	assert.Contains(t, out, "carol@mail.com (domains: no data)")
}

func TestMainDomain(t *testing.T) {
	assert.Equal(t, "google.com", mainDomain("contacts.google.com"))
	assert.Equal(t, "google.com", mainDomain("google.com"))
	assert.Equal(t, "localhost", mainDomain("localhost"))
}
