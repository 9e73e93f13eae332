// Package search implements the feed's hybrid query language: bracketed
// tag literals plus free-text keywords, e.g. `[react] custom hooks`.
package search

import "strings"

// Query is the parsed form of a raw search string. Tags keeps appearance
// order and duplicates; literals are lower-cased at parse time. Keywords
// keep their original case, matching lower-cases both sides.
type Query struct {
	Tags     []string
	Keywords []string
}

// IsEmpty reports a query with no tag literals and no keywords. Callers
// that got no search input at all should skip matching entirely rather
// than match against an empty query.
func (q Query) IsEmpty() bool {
	return len(q.Tags) == 0 && len(q.Keywords) == 0
}

// Parse splits a raw search string into tag literals and keywords. Every
// `[...]` segment becomes one tag literal; the keywords are the whitespace
// fields of whatever text remains outside the brackets, so an all-bracket
// or blank input yields no keyword artifacts.
func Parse(raw string) Query {
	var q Query
	var rest strings.Builder

	for i := 0; i < len(raw); {
		open := strings.IndexByte(raw[i:], '[')
		if open < 0 {
			rest.WriteString(raw[i:])
			break
		}
		open += i
		end := strings.IndexByte(raw[open:], ']')
		if end < 0 {
			rest.WriteString(raw[i:])
			break
		}
		end += open

		rest.WriteString(raw[i:open])
		q.Tags = append(q.Tags, strings.ToLower(raw[open+1:end]))
		i = end + 1
	}

	q.Keywords = strings.Fields(rest.String())
	return q
}
