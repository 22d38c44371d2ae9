package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryResponse_JSON(t *testing.T) {
	resp := QueryResponse{
		Type: ResponseTypeData,
		Data: ResponseData{Table: &TableData{Columns: []string{"title"}, Rows: [][]any{{"Ship it"}}}},
	}

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "data", got["type"])

	data := got["data"].(map[string]any)
	assert.Contains(t, data, "table")
	assert.NotContains(t, data, "content")
	assert.NotContains(t, data, "analytics")
}
