package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trending-tickers/internal/api"
	"trending-tickers/internal/types"
)

func fastRetry() *api.RetryConfig {
	return &api.RetryConfig{MaxAttempts: 2, InitialWait: time.Millisecond, MaxWait: time.Millisecond}
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer tvly-key", r.Header.Get("Authorization"))

		var body SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hot stocks", body.Query)
		assert.Equal(t, "news", body.Topic)
		assert.Equal(t, 3, body.MaxResults)

		_, _ = w.Write([]byte(`{"query":"hot stocks","results":[
			{"title":"a","url":"https://a","content":"AAPL surges","score":0.9},
			{"title":"b","url":"https://b","content":"MSFT dips","score":0.5}]}`))
	}))
	defer srv.Close()

	c := NewClient("tvly-key", WithBaseURL(srv.URL), WithRetry(fastRetry()))
	res, err := c.Search(context.Background(), &types.SearchRequest{Query: "hot stocks", Topic: "news", MaxResults: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL surges", "MSFT dips"}, res.Contents())
	assert.Equal(t, 0.9, res.Results[0].Score)
}

func TestSearchDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body SearchRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "general", body.Topic)
		assert.Equal(t, 5, body.MaxResults)
		_, _ = w.Write([]byte(`{"query":"q","results":[]}`))
	}))
	defer srv.Close()

	res, err := NewClient("k", WithBaseURL(srv.URL)).Search(context.Background(), &types.SearchRequest{Query: "q"})
	require.NoError(t, err)
	assert.Empty(t, res.Results)
}

func TestSearchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"detail":"nope"}`))
	}))
	defer srv.Close()

	_, err := NewClient("k", WithBaseURL(srv.URL)).Search(context.Background(), &types.SearchRequest{Query: "q"})
	assert.Error(t, err)
}

func TestSearchUnauthorized(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient("bad", WithBaseURL(srv.URL), WithRetry(fastRetry())).Search(context.Background(), &types.SearchRequest{Query: "q"})
	var httpErr *api.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, 1, calls)
}
