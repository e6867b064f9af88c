package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetPassword(t *testing.T) {
	stubPassword(t, "s3cret")
	var out bytes.Buffer

	pw, err := GetPassword("Password for admin", &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
	assert.Equal(t, "Password for admin: \n", out.String())
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer

	_, err := GetPassword("Password", &out)
	require.Error(t, err)
}

func TestPromptInput(t *testing.T) {
	var out bytes.Buffer
	p := promptInput{reader: bufio.NewReader(strings.NewReader("Bob\n\n")), out: &out}

	text, err := p.Listen(context.Background(), "en-US")
	require.NoError(t, err)
	assert.Equal(t, "Bob", text)
	assert.Contains(t, out.String(), "en-US")

	_, err = p.Listen(context.Background(), "en-US")
	assert.ErrorIs(t, err, common.ErrUnrecognized)

	_, err = p.Listen(context.Background(), "en-US")
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
}
