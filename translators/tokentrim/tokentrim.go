// Package tokentrim cuts text to a token budget so page renders stay within an
// agent's context window.
package tokentrim

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"

	"browsebridge/translators"
)

const Ellipsis = "..."

type TokenTrimmer struct {
	codec     tokenizer.Codec
	maxTokens int
}

// New returns a translator keeping at most maxTokens cl100k tokens. A
// non-positive budget disables trimming.
func New(maxTokens int) (translators.Translator, error) {
	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("error loading tokenizer: %w", err)
	}
	return &TokenTrimmer{codec: codec, maxTokens: maxTokens}, nil
}

func (t *TokenTrimmer) Translate(text string) (string, error) {
	if t.maxTokens <= 0 || text == "" {
		return text, nil
	}
	ids, _, err := t.codec.Encode(text)
	if err != nil {
		return "", fmt.Errorf("error encoding text: %w", err)
	}
	if len(ids) <= t.maxTokens {
		return text, nil
	}
	trimmed, err := t.codec.Decode(ids[:t.maxTokens])
	if err != nil {
		return "", fmt.Errorf("error decoding text: %w", err)
	}
	return trimmed + Ellipsis, nil
}
