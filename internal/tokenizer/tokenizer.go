package tokenizer

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer counts prompt tokens and truncates prompts to a model's context
// limit. Backed by a tiktoken BPE encoding when one can be loaded; otherwise
// tokens are approximated by whitespace-delimited words.
type Tokenizer struct {
	enc *tiktoken.Tiktoken
}

// New returns a tokenizer for the named encoding (for example "gpt2" or
// "cl100k_base"). Loading can fail offline; the word-count fallback keeps the
// tokenizer usable either way.
func New(encoding string) *Tokenizer {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return &Tokenizer{}
	}
	return &Tokenizer{enc: enc}
}

// Count reports the token length of text.
func (t *Tokenizer) Count(text string) int {
	if t.enc == nil {
		return len(strings.Fields(text))
	}
	return len(t.enc.Encode(text, nil, nil))
}

// Truncate drops trailing content so text fits within limit tokens. Text at
// or under the limit comes back unchanged.
func (t *Tokenizer) Truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	if t.enc == nil {
		words := strings.Fields(text)
		if len(words) <= limit {
			return text
		}
		return strings.Join(words[:limit], " ")
	}
	tokens := t.enc.Encode(text, nil, nil)
	if len(tokens) <= limit {
		return text
	}
	return t.enc.Decode(tokens[:limit])
}
