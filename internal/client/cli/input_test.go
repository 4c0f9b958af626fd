package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collectivehq/collective/internal/client/models"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  Jane Doe  \n"))

	got, err := GetSimpleText(r, "Full name:", &out)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got)
	assert.Contains(t, out.String(), "Full name:")
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("no newline"))

	got, err := GetSimpleText(r, "Prompt:", &out)
	require.NoError(t, err)
	assert.Equal(t, "no newline", got)
}

func TestGetSimpleText_EOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader(""))

	_, err := GetSimpleText(r, "Prompt:", &out)
	assert.Error(t, err)
}

func TestGetMultiline(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("line one\nline two\n\nignored\n"))

	got, err := GetMultiline(r, "Bio:", &out)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("s3cret"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Contains(t, out.String(), "password")
}

func TestParseInterests(t *testing.T) {
	selected, unknown := parseInterests("Caring, sharing , gardening,,CREATING")

	assert.Equal(t, []models.Interest{"caring", "sharing", "creating"}, selected)
	assert.Equal(t, []string{"gardening"}, unknown)
}

func TestParseInterests_AllUnknown(t *testing.T) {
	selected, unknown := parseInterests("foo, bar")

	assert.Empty(t, selected)
	assert.NotNil(t, selected)
	assert.Equal(t, []string{"foo", "bar"}, unknown)
}

func TestInterestLine(t *testing.T) {
	assert.Equal(t, "(none)", interestLine(nil))
	assert.Equal(t, "caring, creating", interestLine([]models.Interest{"caring", "creating"}))
}
