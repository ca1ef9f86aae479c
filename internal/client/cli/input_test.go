package cli

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(scannerOf("  hello world  "), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleText_EOF(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(scannerOf(), "Name?", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestConfirm(t *testing.T) {
	for answer, want := range map[string]bool{"y": true, "YES": true, "n": false, "": false, "sure": false} {
		var out bytes.Buffer
		got, err := Confirm(scannerOf(answer), "Delete?", &out)
		require.NoError(t, err)
		assert.Equal(t, want, got, "answer %q", answer)
		assert.Contains(t, out.String(), "Delete? [y/N]")
	}
}

func stubTerminal(t *testing.T, terminal bool, pw string, err error) {
	t.Helper()
	oldTerm, oldRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = oldTerm, oldRead })
	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) { return []byte(pw), err }
}

func TestGetToken_Terminal(t *testing.T) {
	stubTerminal(t, true, " tok-123 \n", nil)

	var out bytes.Buffer
	got, err := GetToken(scannerOf("ignored"), &out)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", got)
	assert.Equal(t, "Enter session token: \n", out.String())
}

func TestGetToken_TerminalError(t *testing.T) {
	stubTerminal(t, true, "", errors.New("boom"))

	var out bytes.Buffer
	_, err := GetToken(scannerOf(), &out)
	assert.Error(t, err)
}

func TestGetToken_Pipe(t *testing.T) {
	stubTerminal(t, false, "", errors.New("must not be called"))

	var out bytes.Buffer
	got, err := GetToken(scannerOf("piped-token"), &out)
	require.NoError(t, err)
	assert.Equal(t, "piped-token", got)
}
