package usecase

import (
	"context"

	"workspace-query/internal/extractor"
	"workspace-query/internal/model"
)

// Enrich narrows analytics contexts to numeric databases and boosts data queries
// whose entities name a column. Other intents pass through unchanged.
func (uc *implUseCase) Enrich(ctx context.Context, qc model.QueryContext, cls model.IntentClassification) model.QueryContext {
	switch cls.Intent {
	case model.IntentAnalytics:
		numeric := make([]model.DatabaseInfo, 0, len(qc.Databases))
		for _, db := range qc.Databases {
			if db.HasNumericColumn() {
				numeric = append(numeric, db)
			}
		}
		uc.l.Debugf(ctx, "%s: %d of %d databases have numeric columns",
			extractor.LogPrefixEnrich, len(numeric), len(qc.Databases))
		qc.Databases = numeric

	case model.IntentDataQuery:
		values := cls.EntitiesOfType(model.EntityGeneric)
		if len(values) == 0 {
			return qc
		}
		dbs := make([]model.DatabaseInfo, len(qc.Databases))
		copy(dbs, qc.Databases)
		for i := range dbs {
			for _, v := range values {
				if hasColumn(dbs[i], v) {
					dbs[i].RelevanceScore += extractor.WeightColumnMatch
				}
			}
		}
		sortDatabases(dbs)
		qc.Databases = dbs
	}
	return qc
}

func hasColumn(db model.DatabaseInfo, value string) bool {
	for _, c := range db.Columns {
		if bestMatch(value, c.Name) == exactMatch {
			return true
		}
	}
	return false
}
