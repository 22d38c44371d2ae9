package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockValidate(t *testing.T) {
	tests := []struct {
		name    string
		block   Block
		wantErr bool
	}{
		{"text ok", NewTextBlock("hello"), false},
		{"text empty", Block{Type: BlockText, Text: &TextBlock{}}, true},
		{"table ok", NewTableBlock("", []string{"a"}, [][]any{}), false},
		{"table without columns", NewTableBlock("", nil, [][]any{{1}}), true},
		{"chart ok", NewChartBlock("", ChartBar, []string{"x"}, []Dataset{{Label: "sum", Data: []float64{1}}}), false},
		{"chart without type", NewChartBlock("", "", []string{"x"}, []Dataset{{Label: "sum"}}), true},
		{"list ok", Block{Type: BlockList, List: &ListBlock{Items: []string{"one"}}}, false},
		{"list empty", Block{Type: BlockList, List: &ListBlock{}}, true},
		{"insight ok", Block{Type: BlockInsight, Insight: &InsightBlock{Title: "t", Content: "c", Severity: SeverityInfo}}, false},
		{"insight missing severity", Block{Type: BlockInsight, Insight: &InsightBlock{Title: "t", Content: "c"}}, true},
		{"variant mismatch", Block{Type: BlockTable, Text: &TextBlock{Content: "x"}}, true},
		{"unknown", Block{Type: "video"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.block.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBlock)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStageTimingsJSON(t *testing.T) {
	var timings StageTimings
	timings.Set(StageClassification, 1500*time.Microsecond)
	timings.Set(StageGeneration, 2*time.Millisecond)
	timings.Total = 10 * time.Millisecond

	raw, err := json.Marshal(timings)
	require.NoError(t, err)

	var got map[string]float64
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 1.5, got["classificationMs"])
	assert.Equal(t, 2.0, got["generationMs"])
	assert.Equal(t, 0.0, got["routingMs"])
	assert.Equal(t, 10.0, got["totalMs"])
}

func TestEntitiesOfType(t *testing.T) {
	c := IntentClassification{Entities: []Entity{
		{Type: EntityDatabase, Value: "Tasks"},
		{Type: EntityPage, Value: "Roadmap"},
		{Type: EntityDatabase, Value: "Deals"},
	}}
	assert.Equal(t, []string{"Tasks", "Deals"}, c.EntitiesOfType(EntityDatabase))
	assert.Nil(t, c.EntitiesOfType(EntityMetric))
}

func TestDatabaseInfoHasNumericColumn(t *testing.T) {
	db := DatabaseInfo{Columns: []ColumnSummary{{Name: "title", Type: "text"}}}
	assert.False(t, db.HasNumericColumn())
	db.Columns = append(db.Columns, ColumnSummary{Name: "score", Type: ColumnRating})
	assert.True(t, db.HasNumericColumn())
}
