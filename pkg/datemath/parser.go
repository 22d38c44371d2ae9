package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	aheadPattern = regexp.MustCompile(`^in (\d+) (day|week|month)s?$`)
	agoPattern   = regexp.MustCompile(`^(\d+) (day|week|month)s? ago$`)
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Parser resolves relative date phrases in one timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a parser for an IANA timezone such as "Europe/Berlin". Empty means UTC.
func NewParser(timezone string) (*Parser, error) {
	if timezone == "" {
		return &Parser{location: time.UTC}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Day resolves a phrase naming a single day ("tomorrow", "in 3 days", "2 weeks ago",
// "next friday", "last monday", "friday") to midnight of that day.
func (p *Parser) Day(phrase string, base time.Time) (time.Time, error) {
	phrase = strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
	today := p.startOfDay(base)

	switch phrase {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if m := aheadPattern.FindStringSubmatch(phrase); m != nil {
		n, _ := strconv.Atoi(m[1])
		return shift(today, n, m[2]), nil
	}
	if m := agoPattern.FindStringSubmatch(phrase); m != nil {
		n, _ := strconv.Atoi(m[1])
		return shift(today, -n, m[2]), nil
	}

	direction, name := 1, phrase
	switch {
	case strings.HasPrefix(phrase, "next "):
		name = strings.TrimPrefix(phrase, "next ")
	case strings.HasPrefix(phrase, "last "):
		direction, name = -1, strings.TrimPrefix(phrase, "last ")
	}
	if wd, ok := weekdays[name]; ok {
		return nearestWeekday(today, wd, direction), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownRange, phrase)
}

func shift(day time.Time, n int, unit string) time.Time {
	switch unit {
	case "week":
		return day.AddDate(0, 0, 7*n)
	case "month":
		return day.AddDate(0, n, 0)
	default:
		return day.AddDate(0, 0, n)
	}
}

// nearestWeekday finds the closest wd strictly after (direction 1) or before (-1) day.
func nearestWeekday(day time.Time, wd time.Weekday, direction int) time.Time {
	diff := (int(wd) - int(day.Weekday()) + 7) % 7
	if direction < 0 {
		diff = (int(day.Weekday()) - int(wd) + 7) % 7
	}
	if diff == 0 {
		diff = 7
	}
	return day.AddDate(0, 0, direction*diff)
}

func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

func (p *Parser) endOfDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, p.location)
}
