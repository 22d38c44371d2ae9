package qdrant

// CreateCollectionRequest defines the schema for creating a collection.
type CreateCollectionRequest struct {
	Name    string       `json:"-"` // Collection name (in URL)
	Vectors VectorConfig `json:"vectors"`
}

// VectorConfig defines vector dimension and distance metric.
type VectorConfig struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"` // "Cosine", "Euclid", "Dot"
}

// Point represents a vector with payload. Qdrant only accepts UUID or unsigned integer ids.
type Point struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

type UpsertPointsRequest struct {
	Points []Point `json:"points"`
}

// Match selects a single value or any of several values.
type Match struct {
	Value any   `json:"value,omitempty"`
	Any   []any `json:"any,omitempty"`
}

// Condition matches a payload key.
type Condition struct {
	Key   string `json:"key"`
	Match Match  `json:"match"`
}

// Filter combines conditions; all Must conditions have to hold.
type Filter struct {
	Must []Condition `json:"must,omitempty"`
}

type SearchRequest struct {
	Vector         []float32 `json:"vector"`
	Limit          int       `json:"limit"`
	WithPayload    bool      `json:"with_payload"`
	Filter         *Filter   `json:"filter,omitempty"`
	ScoreThreshold float64   `json:"score_threshold,omitempty"`
}

type SearchResponse struct {
	Result []ScoredPoint `json:"result"`
	Status string        `json:"status"`
}

// ScoredPoint is a search result with similarity score.
type ScoredPoint struct {
	ID      string         `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

// String returns the payload value at key when it is a string.
func (p ScoredPoint) String(key string) string {
	if v, ok := p.Payload[key].(string); ok {
		return v
	}
	return ""
}

type DeletePointsRequest struct {
	Filter *Filter  `json:"filter,omitempty"`
	Points []string `json:"points,omitempty"`
}

type errorResponse struct {
	Status struct {
		Error string `json:"error"`
	} `json:"status"`
}
