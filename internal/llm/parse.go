package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// rawClassification is the wire shape of a model's JSON response, decoded
// loosely before schema validation tightens it into core.Classification.
type rawClassification struct {
	Category      string `json:"category"`
	Subcategory   string `json:"subcategory"`
	Subject       string `json:"subject"`
	Year          int    `json:"year"`
	SuggestedName string `json:"suggested_name"`
	Confidence    int    `json:"confidence"`
	Rationale     string `json:"rationale"`
}

var codeBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")
var flatObjectPattern = regexp.MustCompile(`(?s)\{[^{}]*\}`)

// parseResponse searches response for a JSON object in four passes, in
// order, returning on the first well-formed match. This ports
// ollama_analyzer.py's _parse_json_response pass order exactly.
func parseResponse(response string) (*rawClassification, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, fmt.Errorf("empty response")
	}

	if rc, ok := tryParse(response); ok {
		return rc, nil
	}

	if m := codeBlockPattern.FindStringSubmatch(response); m != nil {
		if rc, ok := tryParse(strings.TrimSpace(m[1])); ok {
			return rc, nil
		}
	}

	if m := flatObjectPattern.FindString(response); m != "" {
		if rc, ok := tryParse(m); ok {
			return rc, nil
		}
	}

	if candidate, ok := braceBalancedWalk(response); ok {
		if rc, ok := tryParse(candidate); ok {
			return rc, nil
		}
	}

	return nil, fmt.Errorf("no well-formed JSON object found in response")
}

func tryParse(s string) (*rawClassification, bool) {
	var rc rawClassification
	if err := json.Unmarshal([]byte(s), &rc); err != nil {
		return nil, false
	}
	return &rc, true
}

// braceBalancedWalk finds the first top-level balanced {...} span, tolerant
// of nested objects the flat regex pass cannot handle. A '}' seen before any
// '{' is just stray prose and is ignored rather than driving depth negative,
// which would otherwise make the real object's closing brace unmatchable.
func braceBalancedWalk(s string) (string, bool) {
	depth := 0
	start := -1
	for i, r := range s {
		switch r {
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start == -1 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+len(string(r))], true
			}
		}
	}
	return "", false
}
