package chat

import (
	"context"
	"fmt"
	"strings"

	googletranslatefree "github.com/bas24/googletranslatefree"
)

// Translator turns English text into another language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// GoogleTranslator uses Google Translate's free web endpoint.
type GoogleTranslator struct{}

// Translate translates English text into targetLang. The underlying client
// does not take a context, so cancellation only abandons the result.
func (GoogleTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		out, err := googletranslatefree.Translate(text, "en", targetLang)
		ch <- result{out, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("translation failed: %w", r.err)
		}
		return r.text, nil
	}
}
