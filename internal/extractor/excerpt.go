package extractor

import "unicode/utf8"

// DefaultExcerptBytes is the default content excerpt cap.
const DefaultExcerptBytes = 8192

// truncationSentinel is appended whenever the excerpt cap truncated content.
const truncationSentinel = "\n[TRUNCATED]"

// truncate caps text at maxBytes, never splitting a multi-byte UTF-8 rune,
// and appends truncationSentinel when truncation occurred -- the sentinel
// itself counts against maxBytes, so the returned string never exceeds it.
// If maxBytes is too small to fit the sentinel at all, it is dropped rather
// than allowed to push the result over the cap. Passing maxBytes <= 0
// returns text unchanged.
func truncate(text string, maxBytes int) string {
	if maxBytes <= 0 || len(text) <= maxBytes {
		return text
	}

	budget := maxBytes - len(truncationSentinel)
	sentinel := truncationSentinel
	if budget < 0 {
		budget = maxBytes
		sentinel = ""
	}

	cut := budget
	// Walk backwards until we land on a rune boundary.
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + sentinel
}

// excerptPtr builds the *string to store on FileRecord.ContentExcerpt,
// truncating to the configured cap. An empty string is a valid (non-nil)
// excerpt, distinct from no excerpt at all.
func excerptPtr(text string, capBytes int) *string {
	out := truncate(text, capBytes)
	return &out
}
