package usecase

import (
	"context"
	"fmt"
	"strings"

	"workspace-query/internal/execution"
	"workspace-query/internal/execution/repository"
	"workspace-query/internal/model"
)

var periodPhrases = []struct {
	period  string
	phrases []string
}{
	{execution.PeriodDay, []string{"by day", "per day", "daily", "each day"}},
	{execution.PeriodWeek, []string{"by week", "per week", "weekly", "each week"}},
	{execution.PeriodMonth, []string{"by month", "per month", "monthly", "each month"}},
}

var aggregationAliases = map[string]string{
	"sum":     execution.AggSum,
	"total":   execution.AggSum,
	"average": execution.AggAverage,
	"avg":     execution.AggAverage,
	"mean":    execution.AggAverage,
	"count":   execution.AggCount,
	"number":  execution.AggCount,
}

// analytics aggregates the first relevant database that has a usable numeric column.
func (uc *implUseCase) analytics(ctx context.Context, input model.ExecuteInput) (model.QueryResponse, error) {
	p := input.Route.Parameters.Analytics
	if p == nil {
		return model.QueryResponse{}, fmt.Errorf("%w: analytics_query needs parameters", execution.ErrMissingParams)
	}

	for _, id := range p.DatabaseIDs {
		db, err := uc.rows.GetDatabase(ctx, id)
		if err != nil {
			return model.QueryResponse{}, fmt.Errorf("get database %s: %w", id, err)
		}
		metric := pickMetric(db, p.Metrics)
		if metric == "" {
			uc.l.Debugf(ctx, "%s: %s has no numeric column, skipping", execution.LogPrefixExecute, id)
			continue
		}

		from, to := bounds(p.TimeRange)
		data, err := uc.rows.Aggregate(ctx, repository.AggregateOptions{
			DatabaseID: db.ID,
			Metric:     metric,
			Period:     pickPeriod(input.Query, p.TimeRange),
			From:       from,
			To:         to,
		})
		if err != nil {
			return model.QueryResponse{}, fmt.Errorf("aggregate %s.%s: %w", id, metric, err)
		}
		data = keepSeries(data, p.Aggregations)

		return model.QueryResponse{
			Type: model.ResponseTypeAnalytics,
			Data: model.ResponseData{Analytics: &data},
			Metadata: model.ExecutionMetadata{
				Source:   execution.SourceAnalytics,
				RowCount: intPtr(len(data.Labels)),
			},
		}, nil
	}

	return model.QueryResponse{
		Type:     model.ResponseTypeAnalytics,
		Data:     model.ResponseData{Message: execution.MsgNoNumericData},
		Metadata: model.ExecutionMetadata{Source: execution.SourceAnalytics, RowCount: intPtr(0)},
	}, nil
}

// pickMetric prefers a requested metric that names a numeric column, then the first numeric column.
func pickMetric(db model.DatabaseInfo, requested []string) string {
	for _, want := range requested {
		for _, c := range db.Columns {
			if c.IsNumeric() && strings.EqualFold(c.Name, strings.TrimSpace(want)) {
				return c.Name
			}
		}
	}
	for _, c := range db.Columns {
		if c.IsNumeric() {
			return c.Name
		}
	}
	return ""
}

// pickPeriod honours an explicit granularity in the query. Otherwise short windows
// are bucketed per day and everything else per month.
func pickPeriod(query string, window *model.TimeWindow) string {
	q := strings.ToLower(query)
	for _, p := range periodPhrases {
		for _, phrase := range p.phrases {
			if strings.Contains(q, phrase) {
				return p.period
			}
		}
	}
	if window != nil && !window.Start.IsZero() && window.End.Sub(window.Start) <= execution.DailyBucketSpan {
		return execution.PeriodDay
	}
	return execution.PeriodMonth
}

// keepSeries drops the aggregate series that were not asked for. Unknown names are ignored;
// if nothing recognisable was asked for every series is kept.
func keepSeries(data model.AnalyticsData, aggregations []string) model.AnalyticsData {
	want := map[string]bool{}
	for _, a := range aggregations {
		if agg, ok := aggregationAliases[strings.ToLower(strings.TrimSpace(a))]; ok {
			want[agg] = true
		}
	}
	if len(want) == 0 {
		return data
	}
	if !want[execution.AggSum] {
		data.Sum = nil
	}
	if !want[execution.AggAverage] {
		data.Average = nil
	}
	if !want[execution.AggCount] {
		data.Count = nil
	}
	return data
}
