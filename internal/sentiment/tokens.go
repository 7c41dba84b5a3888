package sentiment

import (
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/daulet/tokenizers"
)

// TokenSpanner reports where each model token of a text starts and ends.
type TokenSpanner interface {
	// Spans returns the byte span of every token of text, special tokens excluded.
	Spans(text string) [][2]uint
	// SpecialTokens is the number of tokens the model adds around an input,
	// e.g. [CLS] and [SEP].
	SpecialTokens() int
}

// TruncateTokens cuts text so that, special tokens included, it encodes to at
// most maxTokens tokens. The cut falls at the end of the last kept token.
func TruncateTokens(tok TokenSpanner, text string, maxTokens int) string {
	if maxTokens <= 0 || text == "" {
		return text
	}
	budget := maxTokens - tok.SpecialTokens()
	if budget <= 0 {
		return ""
	}

	spans := tok.Spans(text)
	if len(spans) <= budget {
		return text
	}

	end := int(spans[budget-1][1])
	if end > len(text) {
		end = len(text)
	}
	for end > 0 && end < len(text) && !utf8.RuneStart(text[end]) {
		end--
	}
	return text[:end]
}

// modelTokenizer loads the tokenizer.json that ships next to an ONNX model.
type modelTokenizer struct {
	tk       *tokenizers.Tokenizer
	specials int
}

func newModelTokenizer(modelPath string) (*modelTokenizer, error) {
	tk, err := tokenizers.FromFile(filepath.Join(modelPath, "tokenizer.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}
	withSpecials, _ := tk.Encode("", true)
	return &modelTokenizer{tk: tk, specials: len(withSpecials)}, nil
}

func (m *modelTokenizer) Spans(text string) [][2]uint {
	enc := m.tk.EncodeWithOptions(text, false, tokenizers.WithReturnOffsets())
	spans := make([][2]uint, len(enc.Offsets))
	for i, o := range enc.Offsets {
		spans[i] = [2]uint(o)
	}
	return spans
}

func (m *modelTokenizer) SpecialTokens() int { return m.specials }

func (m *modelTokenizer) Close() {
	m.tk.Close()
}
