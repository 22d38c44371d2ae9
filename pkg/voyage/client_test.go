package voyage_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workspace-query/pkg/voyage"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-voyage-key" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"invalid key"}`))
			return
		}

		var req voyage.EmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Input[0] == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":{"message":"overloaded"}}`))
			return
		}
		if req.Model != "custom-model" || req.InputType == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// Answer out of order to check index handling.
		resp := voyage.EmbedResponse{}
		for i := len(req.Input) - 1; i >= 0; i-- {
			resp.Data = append(resp.Data, voyage.EmbeddingData{Index: i, Embedding: []float32{float32(i), 0.5}})
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := voyage.New("")
	assert.ErrorIs(t, err, voyage.ErrMissingAPIKey)
}

func TestEmbed(t *testing.T) {
	ts := newServer(t)
	client, err := voyage.New("test-voyage-key")
	require.NoError(t, err)
	client.WithBaseURL(ts.URL).WithModel("custom-model")

	t.Run("keeps input order", func(t *testing.T) {
		emb, err := client.Embed(context.Background(), []string{"a", "b", "c"}, voyage.InputDocument)
		require.NoError(t, err)
		require.Len(t, emb, 3)
		assert.Equal(t, []float32{0, 0.5}, emb[0])
		assert.Equal(t, []float32{2, 0.5}, emb[2])
	})

	t.Run("query helper", func(t *testing.T) {
		vec, err := client.EmbedQuery(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, []float32{0, 0.5}, vec)
	})

	t.Run("no input", func(t *testing.T) {
		_, err := client.Embed(context.Background(), nil, voyage.InputQuery)
		assert.ErrorIs(t, err, voyage.ErrNoInput)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := client.Embed(context.Background(), []string{"cause_500"}, voyage.InputQuery)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "overloaded")
	})

	t.Run("unauthorized", func(t *testing.T) {
		bad, _ := voyage.New("bad-key")
		bad.WithBaseURL(ts.URL)
		_, err := bad.Embed(context.Background(), []string{"x"}, voyage.InputQuery)
		assert.True(t, errors.Is(err, voyage.ErrUnauthorized))
		assert.Contains(t, err.Error(), "invalid key")
	})
}
