package model

import (
	"errors"
	"fmt"
)

// BlockType tags a display block.
type BlockType string

const (
	BlockText    BlockType = "text"
	BlockTable   BlockType = "table"
	BlockChart   BlockType = "chart"
	BlockList    BlockType = "list"
	BlockInsight BlockType = "insight"
)

// Chart kinds.
const (
	ChartBar  = "bar"
	ChartLine = "line"
	ChartPie  = "pie"
	ChartArea = "area"
)

// Insight severities.
const (
	SeverityInfo     = "info"
	SeveritySuccess  = "success"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

var ErrInvalidBlock = errors.New("invalid block")

type TextBlock struct {
	Content string `json:"content"`
	Format  string `json:"format,omitempty"`
}

type TableBlock struct {
	Title     string   `json:"title,omitempty"`
	Columns   []string `json:"columns"`
	Rows      [][]any  `json:"rows"`
	Truncated bool     `json:"truncated,omitempty"`
	TotalRows int      `json:"totalRows,omitempty"`
}

type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

type ChartBlock struct {
	Title       string    `json:"title,omitempty"`
	ChartType   string    `json:"chartType"`
	Labels      []string  `json:"labels"`
	Datasets    []Dataset `json:"datasets"`
	Truncated   bool      `json:"truncated,omitempty"`
	TotalPoints int       `json:"totalPoints,omitempty"`
}

type ListBlock struct {
	Title   string   `json:"title,omitempty"`
	Items   []string `json:"items"`
	Ordered bool     `json:"ordered,omitempty"`
}

type InsightBlock struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Severity string `json:"severity"`
}

// Block is one typed unit of a rendered answer. Exactly one variant matching Type is set.
type Block struct {
	Type    BlockType     `json:"type"`
	Text    *TextBlock    `json:"text,omitempty"`
	Table   *TableBlock   `json:"table,omitempty"`
	Chart   *ChartBlock   `json:"chart,omitempty"`
	List    *ListBlock    `json:"list,omitempty"`
	Insight *InsightBlock `json:"insight,omitempty"`
}

func NewTextBlock(content string) Block {
	return Block{Type: BlockText, Text: &TextBlock{Content: content, Format: "markdown"}}
}

func NewTableBlock(title string, columns []string, rows [][]any) Block {
	return Block{Type: BlockTable, Table: &TableBlock{Title: title, Columns: columns, Rows: rows}}
}

func NewChartBlock(title, chartType string, labels []string, datasets []Dataset) Block {
	return Block{Type: BlockChart, Chart: &ChartBlock{Title: title, ChartType: chartType, Labels: labels, Datasets: datasets}}
}

// Validate checks the variant-specific required fields.
func (b Block) Validate() error {
	switch b.Type {
	case BlockText:
		if b.Text == nil || b.Text.Content == "" {
			return fmt.Errorf("%w: text block needs content", ErrInvalidBlock)
		}
	case BlockTable:
		if b.Table == nil || len(b.Table.Columns) == 0 || b.Table.Rows == nil {
			return fmt.Errorf("%w: table block needs columns and rows", ErrInvalidBlock)
		}
	case BlockChart:
		if b.Chart == nil || b.Chart.ChartType == "" || len(b.Chart.Datasets) == 0 {
			return fmt.Errorf("%w: chart block needs chartType and data", ErrInvalidBlock)
		}
	case BlockList:
		if b.List == nil || len(b.List.Items) == 0 {
			return fmt.Errorf("%w: list block needs items", ErrInvalidBlock)
		}
	case BlockInsight:
		if b.Insight == nil || b.Insight.Title == "" || b.Insight.Content == "" || b.Insight.Severity == "" {
			return fmt.Errorf("%w: insight block needs title, content and severity", ErrInvalidBlock)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidBlock, b.Type)
	}
	return nil
}

// ResponseMetadata accompanies the blocks of a StructuredResponse.
type ResponseMetadata struct {
	Confidence        float64  `json:"confidence"`
	DataSources       []string `json:"dataSources"`
	Suggestions       []string `json:"suggestions,omitempty"`
	FollowUpQuestions []string `json:"followUpQuestions,omitempty"`
}

// StructuredResponse is the final rendered answer.
type StructuredResponse struct {
	Blocks   []Block          `json:"blocks"`
	Metadata ResponseMetadata `json:"metadata"`
}

// HasBlock reports whether any block has type t.
func (r StructuredResponse) HasBlock(t BlockType) bool {
	for _, b := range r.Blocks {
		if b.Type == t {
			return true
		}
	}
	return false
}
