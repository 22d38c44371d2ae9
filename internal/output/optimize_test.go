package output

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workspace-query/internal/model"
)

func bigChart(points int) model.Block {
	labels := make([]string, points)
	a := make([]float64, points)
	b := make([]float64, points)
	for i := range labels {
		labels[i] = fmt.Sprintf("p%d", i)
		a[i] = float64(i)
		b[i] = float64(i * 2)
	}
	return model.NewChartBlock("trend", model.ChartLine, labels, []model.Dataset{{Label: "a", Data: a}, {Label: "b", Data: b}})
}

func bigTable(rows int) model.Block {
	data := make([][]any, rows)
	for i := range data {
		data[i] = []any{i}
	}
	return model.NewTableBlock("t", []string{"n"}, data)
}

func TestOptimize_Truncates(t *testing.T) {
	in := model.StructuredResponse{Blocks: []model.Block{
		model.NewTextBlock("intro"),
		bigTable(250),
		bigChart(80),
		bigTable(10),
	}}

	got := Optimize(in, 100, 50)

	require.Len(t, got.Blocks, 4)
	table := got.Blocks[1].Table
	assert.Len(t, table.Rows, 100)
	assert.True(t, table.Truncated)
	assert.Equal(t, 250, table.TotalRows)

	chart := got.Blocks[2].Chart
	assert.Len(t, chart.Labels, 50)
	for _, ds := range chart.Datasets {
		assert.Len(t, ds.Data, 50, "series are cut in lock-step with labels")
	}
	assert.Equal(t, 80, chart.TotalPoints)
	assert.Equal(t, 49.0, chart.Datasets[0].Data[49])

	small := got.Blocks[3].Table
	assert.False(t, small.Truncated)
	assert.Len(t, small.Rows, 10)

	assert.Len(t, in.Blocks[1].Table.Rows, 250, "input is not mutated")
	assert.Len(t, in.Blocks[2].Chart.Labels, 80)
}

func TestOptimize_Idempotent(t *testing.T) {
	in := model.StructuredResponse{
		Blocks:   []model.Block{bigTable(101), bigChart(51), bigTable(100), bigChart(50)},
		Metadata: model.ResponseMetadata{Confidence: 0.7, DataSources: []string{"Tasks"}},
	}

	once := Optimize(in, 100, 50)
	twice := Optimize(once, 100, 50)

	assert.Equal(t, once, twice)
	assert.False(t, once.Blocks[2].Table.Truncated)
	assert.False(t, once.Blocks[3].Chart.Truncated)
}

func TestOptimize_Empty(t *testing.T) {
	once := Optimize(model.StructuredResponse{}, 100, 50)
	assert.Equal(t, once, Optimize(once, 100, 50))
}
