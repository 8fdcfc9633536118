package llm

import "github.com/localorganizer/organizer/internal/tokenizer"

// TokenStats reports how many BPE tokens a synthesized prompt consumed,
// using the tiktoken-go-backed counter rather than re-deriving one.
type TokenStats struct {
	PromptTokens int
	Encoding     string
}

// countPromptTokens counts prompt using enc (falls back to
// tokenizer.NameCL100K when enc is empty). A tokenizer initialization
// failure degrades to a zero count rather than aborting classification --
// token accounting is diagnostic, not load-bearing.
func countPromptTokens(prompt, enc string) TokenStats {
	if enc == "" {
		enc = tokenizer.NameCL100K
	}
	t, err := tokenizer.NewTokenizer(enc)
	if err != nil {
		return TokenStats{PromptTokens: 0, Encoding: enc}
	}
	return TokenStats{PromptTokens: t.Count(prompt), Encoding: t.Name()}
}
