package romaji

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// ipaReadingIndex is the position of the katakana reading in IPA dictionary features.
const ipaReadingIndex = 7

// Romanizer converts mixed kanji and kana text into space-delimited romaji.
// The dictionary is loaded on first use.
type Romanizer struct {
	once sync.Once
	tok  *tokenizer.Tokenizer
	err  error
}

// NewRomanizer creates a romanizer backed by the IPA dictionary.
func NewRomanizer() *Romanizer {
	return &Romanizer{}
}

// Romanize tokenizes text and returns the passport romaji of every token's
// reading, one token per word.
func (r *Romanizer) Romanize(ctx context.Context, text string) (string, error) {
	r.once.Do(func() {
		r.tok, r.err = tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	})
	if r.err != nil {
		return "", fmt.Errorf("failed to initialize tokenizer: %w", r.err)
	}

	tokens := r.tok.Tokenize(text)
	words := make([]string, 0, len(tokens))
	for i := range tokens {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		surface := strings.TrimSpace(tokens[i].Surface)
		if surface == "" {
			continue
		}

		reading := surface
		if features := tokens[i].Features(); len(features) > ipaReadingIndex && HasKana(features[ipaReadingIndex]) {
			reading = features[ipaReadingIndex]
		}

		if word := strings.TrimSpace(KanaToRomaji(reading)); word != "" {
			words = append(words, word)
		}
	}

	return strings.Join(strings.Fields(strings.Join(words, " ")), " "), nil
}
