package model

import "time"

// ColumnType values that carry numbers.
const (
	ColumnNumber   = "number"
	ColumnCurrency = "currency"
	ColumnPercent  = "percent"
	ColumnRating   = "rating"
)

// ResourceType names what an entity was matched against.
type ResourceType string

const (
	ResourceDatabase  ResourceType = "database"
	ResourcePage      ResourceType = "page"
	ResourceWorkspace ResourceType = "workspace"
)

type WorkspaceInfo struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MemberCount  int       `json:"memberCount"`
	LastActivity time.Time `json:"lastActivity"`
}

type ColumnSummary struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// IsNumeric reports whether the column holds numeric values.
func (c ColumnSummary) IsNumeric() bool {
	switch c.Type {
	case ColumnNumber, ColumnCurrency, ColumnPercent, ColumnRating:
		return true
	}
	return false
}

type DatabaseInfo struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	TableName        string          `json:"tableName"`
	Columns          []ColumnSummary `json:"columns"`
	RowCount         int             `json:"rowCount"`
	RecentlyAccessed bool            `json:"recentlyAccessed"`
	RelevanceScore   float64         `json:"relevanceScore"`
}

// HasNumericColumn reports whether at least one column is numeric.
func (d DatabaseInfo) HasNumericColumn() bool {
	for _, c := range d.Columns {
		if c.IsNumeric() {
			return true
		}
	}
	return false
}

type PageInfo struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Excerpt        string    `json:"excerpt,omitempty"`
	LastModified   time.Time `json:"lastModified"`
	BlockCount     int       `json:"blockCount"`
	RelevanceScore float64   `json:"relevanceScore"`
}

type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// ContextEntity is a classifier entity after matching against concrete resources.
type ContextEntity struct {
	Entity
	MatchedResourceID   string       `json:"matchedResourceId,omitempty"`
	MatchedResourceType ResourceType `json:"matchedResourceType,omitempty"`
}

// Matched reports whether the entity resolved to a real resource.
func (e ContextEntity) Matched() bool {
	return e.MatchedResourceID != ""
}

// QueryContext holds the scored resources relevant to a query.
// Databases and Pages are sorted by descending RelevanceScore.
type QueryContext struct {
	Workspace         WorkspaceInfo   `json:"workspace"`
	Databases         []DatabaseInfo  `json:"databases"`
	Pages             []PageInfo      `json:"pages"`
	User              UserProfile     `json:"user"`
	ExtractedEntities []ContextEntity `json:"extractedEntities"`
}
