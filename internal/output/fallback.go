package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"workspace-query/internal/model"
)

// Fallback renders a response without a completion service:
// tables become a table block, content a text block, aggregates a chart block,
// and everything else a text block with a bounded dump of the payload.
func Fallback(resp model.QueryResponse, meta model.ResponseMetadata) model.StructuredResponse {
	return model.StructuredResponse{Blocks: []model.Block{fallbackBlock(resp)}, Metadata: meta}
}

func fallbackBlock(resp model.QueryResponse) model.Block {
	d := resp.Data
	switch resp.Type {
	case model.ResponseTypeData:
		if d.Table != nil && len(d.Table.Columns) > 0 {
			rows := d.Table.Rows
			if rows == nil {
				rows = [][]any{}
			}
			return model.NewTableBlock(TitleResults, d.Table.Columns, rows)
		}
		if d.Table != nil {
			return model.NewTextBlock(MsgNoRows)
		}

	case model.ResponseTypeContent:
		return model.NewTextBlock(contentText(d))

	case model.ResponseTypeChart, model.ResponseTypeAnalytics:
		if b, ok := chartBlock(d.Analytics); ok {
			return b
		}
	}
	return model.NewTextBlock(dump(d))
}

func contentText(d model.ResponseData) string {
	if d.Content == nil {
		if d.Message != "" {
			return d.Message
		}
		return MsgNoContent
	}
	if strings.TrimSpace(d.Content.Text) != "" {
		return d.Content.Text
	}
	if len(d.Content.Passages) == 0 {
		return MsgNoContent
	}
	var b strings.Builder
	for i, p := range d.Content.Passages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "**%s**\n%s", p.Title, p.Snippet)
	}
	return b.String()
}

func chartBlock(a *model.AnalyticsData) (model.Block, bool) {
	if a == nil || len(a.Labels) == 0 {
		return model.Block{}, false
	}
	var datasets []model.Dataset
	if len(a.Sum) > 0 {
		datasets = append(datasets, model.Dataset{Label: seriesLabel("Sum", a.Metric), Data: a.Sum})
	}
	if len(a.Average) > 0 {
		datasets = append(datasets, model.Dataset{Label: seriesLabel("Average", a.Metric), Data: a.Average})
	}
	if len(a.Count) > 0 {
		datasets = append(datasets, model.Dataset{Label: "Count", Data: a.Count})
	}
	if len(datasets) == 0 {
		return model.Block{}, false
	}
	return model.NewChartBlock(TitleAggregation, model.ChartBar, a.Labels, datasets), true
}

func seriesLabel(agg, metric string) string {
	if metric == "" {
		return agg
	}
	return agg + " of " + metric
}

// dump prefers a human message and otherwise prints the payload as bounded JSON.
func dump(d model.ResponseData) string {
	if d.Action != nil && d.Action.Message != "" {
		return d.Action.Message
	}
	if d.Message != "" {
		return d.Message
	}
	raw, err := json.Marshal(d)
	if err != nil || string(raw) == "{}" {
		return MsgNoContent
	}
	return truncate(string(raw), MaxDumpChars)
}
