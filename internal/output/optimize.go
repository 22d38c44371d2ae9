package output

import "workspace-query/internal/model"

// OptimizeForRendering truncates oversized tables and charts. Blocks are copied, never mutated in place.
func (g *LLMGenerator) OptimizeForRendering(resp model.StructuredResponse) model.StructuredResponse {
	return Optimize(resp, g.maxRows, g.maxPoints)
}

// Optimize is OptimizeForRendering with explicit limits.
func Optimize(resp model.StructuredResponse, maxRows, maxPoints int) model.StructuredResponse {
	blocks := make([]model.Block, 0, len(resp.Blocks))
	for _, b := range resp.Blocks {
		switch {
		case b.Type == model.BlockTable && b.Table != nil && len(b.Table.Rows) > maxRows:
			t := *b.Table
			t.TotalRows = len(t.Rows)
			t.Rows = t.Rows[:maxRows:maxRows]
			t.Truncated = true
			b.Table = &t

		case b.Type == model.BlockChart && b.Chart != nil && needsTrim(b.Chart, maxPoints):
			c := *b.Chart
			if len(c.Labels) > maxPoints {
				c.TotalPoints = len(c.Labels)
				c.Labels = c.Labels[:maxPoints:maxPoints]
			}
			datasets := make([]model.Dataset, len(c.Datasets))
			for i, ds := range c.Datasets {
				if len(ds.Data) > maxPoints {
					ds.Data = ds.Data[:maxPoints:maxPoints]
				}
				datasets[i] = ds
			}
			c.Datasets = datasets
			c.Truncated = true
			b.Chart = &c
		}
		blocks = append(blocks, b)
	}
	resp.Blocks = blocks
	return resp
}

func needsTrim(c *model.ChartBlock, maxPoints int) bool {
	if len(c.Labels) > maxPoints {
		return true
	}
	for _, ds := range c.Datasets {
		if len(ds.Data) > maxPoints {
			return true
		}
	}
	return false
}
