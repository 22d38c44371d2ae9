package usecase

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"workspace-query/internal/extractor"
	"workspace-query/internal/model"
)

type matchStrength int

const (
	noMatch matchStrength = iota
	partialMatch
	exactMatch
)

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "about": true, "from": true,
	"show": true, "find": true, "list": true, "what": true, "which": true, "this": true,
	"that": true, "last": true, "my": true, "me": true, "all": true, "are": true,
}

func (uc *implUseCase) scoreDatabases(dbs []model.DatabaseInfo, query string, entities []model.Entity, recent map[string]bool) {
	queryTokens := tokenSet(query)
	for i := range dbs {
		db := &dbs[i]
		db.RelevanceScore = 0
		for _, e := range entities {
			if e.Type == model.EntityDateRange {
				continue
			}
			db.RelevanceScore += entityWeight(bestMatch(e.Value, db.Name, db.TableName))
		}
		if mentioned(queryTokens, db.Name) || mentioned(queryTokens, db.TableName) {
			db.RelevanceScore += extractor.WeightQueryMention
		}
		if recent[db.ID] {
			db.RecentlyAccessed = true
			db.RelevanceScore += extractor.WeightRecentAccess
		}
	}
}

func (uc *implUseCase) scorePages(pages []model.PageInfo, query string, entities []model.Entity) {
	queryTokens := tokenSet(query)
	now := uc.now()
	for i := range pages {
		p := &pages[i]
		p.RelevanceScore = 0
		for _, e := range entities {
			if e.Type == model.EntityDateRange {
				continue
			}
			p.RelevanceScore += entityWeight(bestMatch(e.Value, p.Title))
		}
		if mentioned(queryTokens, p.Title) {
			p.RelevanceScore += extractor.WeightQueryMention
		}
		excerpt := tokenSet(p.Excerpt)
		for token := range queryTokens {
			if !stopwords[token] && len(token) > 3 && excerpt[token] {
				p.RelevanceScore += extractor.WeightPageContentMatch
			}
		}
		p.RelevanceScore += recencyWeight(now.Sub(p.LastModified).Hours())
	}
}

// recencyWeight halves every PageRecencyHalfLife. Future timestamps count as fresh.
func recencyWeight(ageHours float64) float64 {
	if ageHours < 0 {
		ageHours = 0
	}
	halfLife := extractor.PageRecencyHalfLife.Hours()
	return extractor.WeightPageRecency * math.Pow(0.5, ageHours/halfLife)
}

func entityWeight(m matchStrength) float64 {
	switch m {
	case exactMatch:
		return extractor.WeightEntityExactMatch
	case partialMatch:
		return extractor.WeightEntityPartialMatch
	}
	return 0
}

func bestMatch(value string, names ...string) matchStrength {
	v := normalize(value)
	if v == "" {
		return noMatch
	}
	best := noMatch
	for _, name := range names {
		n := normalize(name)
		switch {
		case n == "":
		case n == v:
			return exactMatch
		case strings.Contains(n, v) || strings.Contains(v, n):
			best = partialMatch
		}
	}
	return best
}

// mentioned reports whether every word of name appears in the query, ignoring plurals.
func mentioned(queryTokens map[string]bool, name string) bool {
	words := strings.Fields(normalize(name))
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !queryTokens[w] && !queryTokens[w+"s"] && !queryTokens[strings.TrimSuffix(w, "s")] {
			return false
		}
	}
	return true
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(normalize(text)) {
		set[w] = true
	}
	return set
}

// normalize lower-cases and turns punctuation and underscores into single spaces.
func normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func sortDatabases(dbs []model.DatabaseInfo) {
	sort.SliceStable(dbs, func(i, j int) bool { return dbs[i].RelevanceScore > dbs[j].RelevanceScore })
}

func sortPages(pages []model.PageInfo) {
	sort.SliceStable(pages, func(i, j int) bool { return pages[i].RelevanceScore > pages[j].RelevanceScore })
}
