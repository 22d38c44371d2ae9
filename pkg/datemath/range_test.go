package datemath_test

import (
	"errors"
	"testing"
	"time"

	"workspace-query/pkg/datemath"
)

func TestResolveRange(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	baseTime := time.Date(2024, 5, 15, 15, 30, 0, 0, time.UTC) // Wednesday, May 15, 2024
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	end := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 23, 59, 59, 0, time.UTC) }

	tests := []struct {
		relative  string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"today", day(2024, 5, 15), end(2024, 5, 15)},
		{"yesterday", day(2024, 5, 14), end(2024, 5, 14)},
		{"this week", day(2024, 5, 13), end(2024, 5, 19)},
		{"last week", day(2024, 5, 6), end(2024, 5, 12)},
		{"this month", day(2024, 5, 1), end(2024, 5, 31)},
		{"Last  Month", day(2024, 4, 1), end(2024, 4, 30)},
		{"the last quarter", day(2024, 1, 1), end(2024, 3, 31)},
		{"this quarter", day(2024, 4, 1), end(2024, 6, 30)},
		{"last year", day(2023, 1, 1), end(2023, 12, 31)},
		{"last 7 days", day(2024, 5, 9), end(2024, 5, 15)},
		{"past 2 weeks", day(2024, 5, 1), end(2024, 5, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.relative, func(t *testing.T) {
			got, err := parser.ResolveRange(tt.relative, baseTime)
			if err != nil {
				t.Fatalf("ResolveRange() error = %v", err)
			}
			if !got.Start.Equal(tt.wantStart) || !got.End.Equal(tt.wantEnd) {
				t.Errorf("ResolveRange() = [%v, %v], want [%v, %v]", got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestResolveRange_LastMonthAcrossYear(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	got, err := parser.ResolveRange("last month", time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Start.Equal(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", got.Start)
	}
	if !got.End.Equal(time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("end = %v", got.End)
	}
}

func TestResolveRange_Unknown(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	_, err := parser.ResolveRange("sometime soon", time.Now())
	if !errors.Is(err, datemath.ErrUnknownRange) {
		t.Errorf("expected ErrUnknownRange, got %v", err)
	}
}

func TestResolveRange_SinglePoints(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	base := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

	got, err := parser.ResolveRange("in 3 days", base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Start.Equal(time.Date(2024, 5, 18, 0, 0, 0, 0, time.UTC)) || !got.End.Equal(time.Date(2024, 5, 18, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("unexpected range %v - %v", got.Start, got.End)
	}

	if _, err := parser.ResolveRange("next funday", base); !errors.Is(err, datemath.ErrUnknownRange) {
		t.Errorf("expected ErrUnknownRange, got %v", err)
	}
}
