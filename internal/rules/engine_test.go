package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localorganizer/organizer/internal/core"
)

func minMB(v float64) *float64 { return &v }

func TestClassify_FirstMatchWins(t *testing.T) {
	rs := []core.Rule{
		{RuleID: "a", Pattern: "*.pdf", Category: core.CategoryTrabalho, Confidence: 90},
		{RuleID: "b", Pattern: "*.pdf", Category: core.CategoryFinancas, Confidence: 90},
	}
	e := New(rs, 0)

	rec := core.FileRecord{Path: "/tmp/x.pdf", Extension: ".pdf", ModTime: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	c := e.Classify(rec)

	require.NotNil(t, c)
	assert.Equal(t, core.CategoryTrabalho, c.Category)
	assert.Equal(t, "a", c.RuleID)
}

func TestClassify_InvoiceKeywordMatchesS2Scenario(t *testing.T) {
	rs := []core.Rule{
		{RuleID: "invoice", Pattern: "*.pdf", Category: core.CategoryFinancas, Confidence: 90, Keywords: []string{"fatura", "invoice"}},
	}
	e := New(rs, 85)

	excerpt := "FATURA DE ENERGIA ELETRICA"
	rec := core.FileRecord{
		Path: "/root/downloads/fatura_janeiro.pdf", Extension: ".pdf",
		ModTime: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), ContentExcerpt: &excerpt,
	}
	c := e.Classify(rec)

	require.NotNil(t, c)
	assert.Equal(t, core.CategoryFinancas, c.Category)
	assert.Equal(t, "invoice", c.RuleID)
}

func TestClassify_KeywordMissReturnsNil(t *testing.T) {
	rs := []core.Rule{
		{RuleID: "invoice", Pattern: "*.pdf", Category: core.CategoryFinancas, Confidence: 90, Keywords: []string{"fatura"}},
	}
	e := New(rs, 85)

	rec := core.FileRecord{Path: "/tmp/report.pdf", Extension: ".pdf", ModTime: time.Now()}
	c := e.Classify(rec)

	assert.Nil(t, c)
	assert.Equal(t, 1, e.Stats().TotalUnmatched)
}

func TestClassify_BelowThresholdContinuesToNextRule(t *testing.T) {
	rs := []core.Rule{
		{RuleID: "low", Pattern: "*.pdf", Category: core.CategoryTrabalho, Confidence: 50},
		{RuleID: "high", Pattern: "*.pdf", Category: core.CategoryFinancas, Confidence: 95},
	}
	e := New(rs, 85)

	rec := core.FileRecord{Path: "/tmp/x.pdf", Extension: ".pdf", ModTime: time.Now()}
	c := e.Classify(rec)

	require.NotNil(t, c)
	assert.Equal(t, "high", c.RuleID)
}

func TestClassify_SizeBoundsExcludeOutOfRangeFiles(t *testing.T) {
	rs := []core.Rule{
		{RuleID: "big-only", Pattern: "*.pdf", Category: core.CategoryTrabalho, Confidence: 90, MinSizeMB: minMB(10)},
	}
	e := New(rs, 0)

	small := core.FileRecord{Path: "/tmp/x.pdf", Extension: ".pdf", Size: 1024, ModTime: time.Now()}
	assert.Nil(t, e.Classify(small))

	big := core.FileRecord{Path: "/tmp/y.pdf", Extension: ".pdf", Size: 20 * 1_048_576, ModTime: time.Now()}
	assert.NotNil(t, e.Classify(big))
}

func TestClassify_SuggestedNameFormat(t *testing.T) {
	rs := []core.Rule{
		{RuleID: "r1", Pattern: "*.pdf", Category: core.CategoryEstudos, Confidence: 90, Description: "artigo"},
	}
	e := New(rs, 0)

	rec := core.FileRecord{Path: "/tmp/paper.pdf", Extension: ".pdf", ModTime: time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)}
	c := e.Classify(rec)

	require.NotNil(t, c)
	assert.Equal(t, "2023-06-05__03_Estudos__artigo.pdf", c.SuggestedName)
}

func TestClassify_BraceExtensionPattern(t *testing.T) {
	rs := []core.Rule{
		{RuleID: "img", Pattern: "*.{jpg,jpeg,png}", Category: core.CategoryPessoal, Confidence: 90},
	}
	e := New(rs, 0)

	rec := core.FileRecord{Path: "/tmp/photo.jpeg", Extension: ".jpeg", ModTime: time.Now()}
	assert.NotNil(t, e.Classify(rec))
}

func TestDefaultRules_ParsesWithoutError(t *testing.T) {
	rs := DefaultRules()
	assert.NotEmpty(t, rs)
	for _, r := range rs {
		assert.NotEmpty(t, r.RuleID)
		assert.True(t, core.IsValidCategory(r.Category))
	}
}
