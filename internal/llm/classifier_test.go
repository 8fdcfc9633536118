package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localorganizer/organizer/internal/core"
)

func newTestServer(t *testing.T, response string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/generate":
			_ = json.NewEncoder(w).Encode(generateResponse{Response: response})
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClient_GenerateReturnsResponseField(t *testing.T) {
	srv := newTestServer(t, `{"category":"01_Trabalho","subject":"x","year":2024,"suggested_name":"a.pdf","confidence":90,"rationale":"r"}`)
	defer srv.Close()

	c := NewClient(ClientConfig{Endpoint: srv.URL, Timeout: 2 * time.Second})
	text, err := c.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Contains(t, text, "01_Trabalho")
}

func TestClient_HealthCheckTrueOnOK(t *testing.T) {
	srv := newTestServer(t, "{}")
	defer srv.Close()

	c := NewClient(ClientConfig{Endpoint: srv.URL})
	assert.True(t, c.HealthCheck(context.Background()))
}

func TestClassifier_ClassifyBatchClassifiesEveryRecordAboveConfidenceGate(t *testing.T) {
	srv := newTestServer(t, `{"category":"01_Trabalho","subject":"x","year":2024,"suggested_name":"a.pdf","confidence":95,"rationale":"r"}`)
	defer srv.Close()

	client := NewClient(ClientConfig{Endpoint: srv.URL, Timeout: 2 * time.Second})
	classifier := NewClassifier(client, ClassifierConfig{MaxConcurrent: 2, MinConfidence: 85, MaxRetries: 1})

	recs := []core.FileRecord{
		{Path: "/a.pdf", Extension: ".pdf"},
		{Path: "/b.pdf", Extension: ".pdf"},
		{Path: "/c.pdf", Extension: ".pdf"},
	}
	results := classifier.ClassifyBatch(context.Background(), recs)

	require.Len(t, results, 3)
	for _, r := range results {
		require.NotNil(t, r.Classification)
		assert.Equal(t, core.CategoryTrabalho, r.Classification.Category)
		assert.False(t, r.LowConfidence)
	}
	assert.Equal(t, 3, classifier.Stats().Successful)
	assert.Greater(t, classifier.Stats().TotalPromptTokens, 0)
	assert.Greater(t, classifier.Stats().AvgPromptTokens(), 0.0)
}

func TestClassifier_LowConfidenceYieldsNilResult(t *testing.T) {
	srv := newTestServer(t, `{"category":"01_Trabalho","subject":"x","year":2024,"suggested_name":"a.pdf","confidence":40,"rationale":"r"}`)
	defer srv.Close()

	client := NewClient(ClientConfig{Endpoint: srv.URL, Timeout: 2 * time.Second})
	classifier := NewClassifier(client, ClassifierConfig{MinConfidence: 85, MaxRetries: 1})

	results := classifier.ClassifyBatch(context.Background(), []core.FileRecord{{Path: "/a.pdf", Extension: ".pdf"}})

	require.Len(t, results, 1)
	assert.Nil(t, results[0].Classification)
	assert.True(t, results[0].LowConfidence)
	assert.Equal(t, 40, results[0].Confidence)
	assert.Equal(t, 85, results[0].Threshold)
	assert.Equal(t, "llm confidence 40 below threshold 85; unclassified", LowConfidenceReason(results[0].Confidence, results[0].Threshold))
	assert.Equal(t, 1, classifier.Stats().LowConfidence)
}

func TestClassifier_UnparseableResponseExhaustsRetriesThenFails(t *testing.T) {
	srv := newTestServer(t, "not json at all")
	defer srv.Close()

	client := NewClient(ClientConfig{Endpoint: srv.URL, Timeout: 2 * time.Second})
	classifier := NewClassifier(client, ClassifierConfig{MinConfidence: 85, MaxRetries: 2})

	results := classifier.ClassifyBatch(context.Background(), []core.FileRecord{{Path: "/a.pdf", Extension: ".pdf"}})

	require.Len(t, results, 1)
	assert.Nil(t, results[0].Classification)
	assert.False(t, results[0].LowConfidence)
	assert.Equal(t, 1, classifier.Stats().Failed)
	assert.Equal(t, 1, classifier.Stats().RetryCount)
}
