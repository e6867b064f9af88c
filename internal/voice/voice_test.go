package voice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("mic unplugged") }

func TestLineInput_Listen(t *testing.T) {
	in := NewLineInput(strings.NewReader("Alice Smith\n   \nBob\n"))
	ctx := context.Background()

	got, err := in.Listen(ctx, DefaultLanguage)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", got)

	_, err = in.Listen(ctx, DefaultLanguage)
	assert.ErrorIs(t, err, common.ErrUnrecognized)

	got, err = in.Listen(ctx, "fr-FR")
	require.NoError(t, err)
	assert.Equal(t, "Bob", got)

	_, err = in.Listen(ctx, DefaultLanguage)
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
}

func TestLineInput_ReadError(t *testing.T) {
	_, err := NewLineInput(failingReader{}).Listen(context.Background(), DefaultLanguage)
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
	assert.Contains(t, err.Error(), "mic unplugged")
}

func TestLineInput_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLineInput(strings.NewReader("x\n")).Listen(ctx, DefaultLanguage)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("es-ES"))
	assert.False(t, IsSupported("de-DE"))
	assert.False(t, IsSupported(""))
}

func TestTranscript(t *testing.T) {
	got, err := Transcript("Carol").Listen(context.Background(), DefaultLanguage)
	require.NoError(t, err)
	assert.Equal(t, "Carol", got)

	_, err = Transcript(" \t").Listen(context.Background(), DefaultLanguage)
	assert.ErrorIs(t, err, common.ErrUnrecognized)
}
