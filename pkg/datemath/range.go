package datemath

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var lastNPattern = regexp.MustCompile(`^(?:last|past|previous) (\d+) (day|days|week|weeks|month|months|year|years)$`)

// ResolveRange converts a relative phrase such as "last month" into a concrete window around baseTime.
// Weeks start on Monday. Every End is the last second of its day.
func (p *Parser) ResolveRange(relative string, baseTime time.Time) (Range, error) {
	relative = strings.Join(strings.Fields(strings.ToLower(relative)), " ")
	relative = strings.TrimPrefix(relative, "the ")
	today := p.startOfDay(baseTime)

	switch relative {
	case "today", "now", "current", "currently":
		return p.days(today, today), nil
	case "yesterday":
		y := today.AddDate(0, 0, -1)
		return p.days(y, y), nil
	case "this week", "current week":
		start := p.startOfWeek(today)
		return p.days(start, start.AddDate(0, 0, 6)), nil
	case "last week", "previous week":
		start := p.startOfWeek(today).AddDate(0, 0, -7)
		return p.days(start, start.AddDate(0, 0, 6)), nil
	case "this month", "current month":
		start := p.startOfMonth(today)
		return p.days(start, start.AddDate(0, 1, -1)), nil
	case "last month", "previous month":
		start := p.startOfMonth(today).AddDate(0, -1, 0)
		return p.days(start, start.AddDate(0, 1, -1)), nil
	case "this quarter", "current quarter":
		start := p.startOfQuarter(today)
		return p.days(start, start.AddDate(0, 3, -1)), nil
	case "last quarter", "previous quarter":
		start := p.startOfQuarter(today).AddDate(0, -3, 0)
		return p.days(start, start.AddDate(0, 3, -1)), nil
	case "this year", "current year":
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, p.location)
		return p.days(start, start.AddDate(1, 0, -1)), nil
	case "last year", "previous year":
		start := time.Date(today.Year()-1, time.January, 1, 0, 0, 0, 0, p.location)
		return p.days(start, start.AddDate(1, 0, -1)), nil
	}

	if m := lastNPattern.FindStringSubmatch(relative); len(m) == 3 {
		n, _ := strconv.Atoi(m[1])
		var start time.Time
		switch {
		case strings.HasPrefix(m[2], "day"):
			start = today.AddDate(0, 0, -(n - 1))
		case strings.HasPrefix(m[2], "week"):
			start = today.AddDate(0, 0, -7*n)
		case strings.HasPrefix(m[2], "month"):
			start = today.AddDate(0, -n, 0)
		default:
			start = today.AddDate(-n, 0, 0)
		}
		return p.days(start, today), nil
	}

	day, err := p.Day(relative, baseTime)
	if err != nil {
		return Range{}, err
	}
	return p.days(day, day), nil
}

func (p *Parser) days(first, last time.Time) Range {
	return Range{Start: first, End: p.endOfDay(last)}
}

func (p *Parser) startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func (p *Parser) startOfMonth(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, p.location)
}

func (p *Parser) startOfQuarter(day time.Time) time.Time {
	month := ((int(day.Month())-1)/3)*3 + 1
	return time.Date(day.Year(), time.Month(month), 1, 0, 0, 0, 0, p.location)
}
