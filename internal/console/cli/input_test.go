package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  hello world  \n"))

	got, err := GetSimpleText(reader, "Enter value", &out)
	require.NoError(t, err)

	assert.Equal(t, "hello world", got)
	assert.Contains(t, out.String(), "Enter value")
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("partial"))

	got, err := GetSimpleText(reader, "Enter value", &out)
	require.NoError(t, err)
	assert.Equal(t, "partial", got)
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("s3cret"), nil }
	defer func() { readPassword = orig }()

	var out bytes.Buffer
	got, err := GetPassword(&out)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", got)
	assert.NotContains(t, out.String(), "s3cret", "the password must not be echoed")
}

func TestGetConfirmation(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			reader := bufio.NewReader(strings.NewReader(tt.input))

			got, err := GetConfirmation(reader, "Proceed?", &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetEdits(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("ssid=home\nport = 8080\nnot-an-edit\n\n"))

	edits, err := GetEdits(reader, &out)
	require.NoError(t, err)

	require.Len(t, edits, 2)
	assert.Equal(t, [2]string{"ssid", "home"}, edits[0])
	assert.Equal(t, [2]string{"port", "8080"}, edits[1])
	assert.Contains(t, out.String(), "not-an-edit")
}

func TestGetEdits_EmptyLineFirst(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("\n"))

	edits, err := GetEdits(reader, &out)
	require.NoError(t, err)
	assert.Empty(t, edits)
}
