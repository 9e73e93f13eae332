package search

import (
	"strings"

	"github.com/askhubdev/askhub/backend/internal/models"
)

// Matches decides whether a question satisfies a parsed query.
//
// The two halves of the query combine with OR: a question passes when all
// tag literals are present among its tag names (case-insensitive, and only
// when the query has tags at all), or when any keyword is a substring of
// its lower-cased title or body. An empty query matches nothing - "no
// filter requested" is the caller's case, not the matcher's.
func Matches(q *models.Question, query Query) bool {
	if len(query.Tags) > 0 && hasAllTags(q, query.Tags) {
		return true
	}
	return hasAnyKeyword(q, query.Keywords)
}

func hasAllTags(q *models.Question, literals []string) bool {
	names := make(map[string]bool, len(q.Tags))
	for _, t := range q.Tags {
		names[strings.ToLower(t.Name)] = true
	}
	for _, lit := range literals {
		if !names[lit] {
			return false
		}
	}
	return true
}

func hasAnyKeyword(q *models.Question, keywords []string) bool {
	title := strings.ToLower(q.Title)
	body := strings.ToLower(q.Body)
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if strings.Contains(title, kw) || strings.Contains(body, kw) {
			return true
		}
	}
	return false
}
