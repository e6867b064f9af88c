// Package voice abstracts speech-to-text capture. The ledger only ever sees
// the transcription; device access and recognition live behind Input.
package voice

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/rollcall/internal/common"
)

// DefaultLanguage is used when the caller does not pick one.
const DefaultLanguage = "en-US"

// SupportedLanguages lists the recognition languages offered to operators.
var SupportedLanguages = []string{"en-US", "es-ES", "fr-FR"}

// IsSupported reports whether language is one of SupportedLanguages.
func IsSupported(language string) bool {
	return slices.Contains(SupportedLanguages, language)
}

// Input produces a best-effort transcription of one utterance.
// It returns common.ErrUnrecognized when speech was captured but could not
// be understood, and common.ErrServiceUnavailable when the recognizer
// could not be reached.
type Input interface {
	Listen(ctx context.Context, language string) (string, error)
}

// LineInput treats each line read from r as one recognized utterance. It
// stands in for a microphone in the CLI and in tests.
type LineInput struct {
	mu sync.Mutex
	sc *bufio.Scanner
}

func NewLineInput(r io.Reader) *LineInput {
	return &LineInput{sc: bufio.NewScanner(r)}
}

func (l *LineInput) Listen(ctx context.Context, language string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.sc.Scan() {
		if err := l.sc.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", common.ErrServiceUnavailable, err)
		}
		return "", common.ErrServiceUnavailable
	}

	text := strings.TrimSpace(l.sc.Text())
	if text == "" {
		return "", common.ErrUnrecognized
	}
	return text, nil
}

// Transcript is an Input whose recognition already happened elsewhere,
// e.g. on a remote client. A blank transcript counts as unrecognized.
type Transcript string

func (t Transcript) Listen(ctx context.Context, language string) (string, error) {
	if strings.TrimSpace(string(t)) == "" {
		return "", common.ErrUnrecognized
	}
	return string(t), nil
}
