package rules

import (
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/localorganizer/organizer/internal/core"
)

//go:embed rules.toml
var defaultRulesTOML string

// ruleTable is the decoding shape for a rules.toml document: a top-level
// array of tables under the "rule" key, in file order.
type ruleTable struct {
	Rule []core.Rule `toml:"rule"`
}

// DefaultRules decodes the table embedded at build time. It panics only if
// the embedded file itself is malformed, which would be a build-time defect
// rather than a runtime condition.
func DefaultRules() []core.Rule {
	rules, err := parseRules(defaultRulesTOML, "embedded rules.toml")
	if err != nil {
		panic(fmt.Sprintf("organizer: embedded rules.toml is invalid: %v", err))
	}
	return rules
}

// LoadFromFile reads and parses a rule table from a TOML file at path,
// preserving declaration order.
func LoadFromFile(path string) ([]core.Rule, error) {
	var table ruleTable
	meta, err := toml.DecodeFile(path, &table)
	if err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	warnUndecodedKeys(meta, path)
	return table.Rule, nil
}

func parseRules(data, name string) ([]core.Rule, error) {
	var table ruleTable
	meta, err := toml.Decode(data, &table)
	if err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", name, err)
	}
	warnUndecodedKeys(meta, name)
	return table.Rule, nil
}

// warnUndecodedKeys logs unknown rule-file keys rather than failing, so a
// newer rule file loaded against an older binary degrades gracefully.
func warnUndecodedKeys(meta toml.MetaData, source string) {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return
	}

	keys := make([]string, 0, len(undecoded))
	for _, k := range undecoded {
		keys = append(keys, k.String())
	}

	slog.Warn("unknown rule keys will be ignored",
		"source", source,
		"keys", strings.Join(keys, ", "),
	)
}
