package usecase

import (
	"strings"

	"workspace-query/internal/model"
)

// matchEntities resolves every classifier entity against the concrete resources.
// A match pins the resource and raises confidence to 1.0; misses are kept unchanged.
func matchEntities(entities []model.Entity, ws model.WorkspaceInfo, dbs []model.DatabaseInfo, pages []model.PageInfo) []model.ContextEntity {
	out := make([]model.ContextEntity, 0, len(entities))
	for _, e := range entities {
		ce := model.ContextEntity{Entity: e}
		if id, kind, ok := resolve(e, ws, dbs, pages); ok {
			ce.MatchedResourceID = id
			ce.MatchedResourceType = kind
			ce.Confidence = 1.0
		}
		out = append(out, ce)
	}
	return out
}

func resolve(e model.Entity, ws model.WorkspaceInfo, dbs []model.DatabaseInfo, pages []model.PageInfo) (string, model.ResourceType, bool) {
	switch e.Type {
	case model.EntityDateRange, model.EntityMetric:
		return "", "", false
	case model.EntityWorkspace:
		if sameName(e.Value, ws.Name) {
			return ws.ID, model.ResourceWorkspace, true
		}
		return "", "", false
	case model.EntityPage:
		if id, ok := findPage(e.Value, pages); ok {
			return id, model.ResourcePage, true
		}
		if id, ok := findDatabase(e.Value, dbs); ok {
			return id, model.ResourceDatabase, true
		}
		return "", "", false
	default:
		if id, ok := findDatabase(e.Value, dbs); ok {
			return id, model.ResourceDatabase, true
		}
		if id, ok := findPage(e.Value, pages); ok {
			return id, model.ResourcePage, true
		}
		return "", "", false
	}
}

func findDatabase(value string, dbs []model.DatabaseInfo) (string, bool) {
	for _, db := range dbs {
		if sameName(value, db.Name) || sameName(value, db.TableName) {
			return db.ID, true
		}
	}
	return "", false
}

func findPage(value string, pages []model.PageInfo) (string, bool) {
	for _, p := range pages {
		if sameName(value, p.Title) {
			return p.ID, true
		}
	}
	return "", false
}

func sameName(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
