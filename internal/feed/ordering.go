package feed

import (
	"sort"
	"strings"

	"github.com/askhubdev/askhub/backend/internal/models"
)

// Order names one of the feed orderings.
type Order string

const (
	OrderNewest     Order = "newest"
	OrderActive     Order = "active"
	OrderUnanswered Order = "unanswered"
)

// ParseOrder maps a raw order name to an Order, defaulting to newest for
// anything unrecognized.
func ParseOrder(raw string) Order {
	switch Order(strings.ToLower(strings.TrimSpace(raw))) {
	case OrderActive:
		return OrderActive
	case OrderUnanswered:
		return OrderUnanswered
	default:
		return OrderNewest
	}
}

// strategies dispatches an Order to its sort. Every entry returns a new
// slice and leaves its input untouched.
var strategies = map[Order]func([]*models.Question) []*models.Question{
	OrderNewest:     sortNewest,
	OrderActive:     sortActive,
	OrderUnanswered: sortUnanswered,
}

// Sort orders questions under the named ordering.
func Sort(order Order, questions []*models.Question) []*models.Question {
	strategy, ok := strategies[order]
	if !ok {
		strategy = sortNewest
	}
	return strategy(questions)
}

func sortNewest(questions []*models.Question) []*models.Question {
	out := make([]*models.Question, len(questions))
	copy(out, questions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func sortUnanswered(questions []*models.Question) []*models.Question {
	var open []*models.Question
	for _, q := range questions {
		if !q.Answered() {
			open = append(open, q)
		}
	}
	return sortNewest(open)
}

// sortActive puts every answered question (most recent answer first) ahead
// of every unanswered one (most recently asked first). The two buckets
// never interleave, whatever the timestamps say: a freshly asked but
// unanswered question still sorts below the stalest answered one. This is
// deliberately not a single sort on the recency key.
func sortActive(questions []*models.Question) []*models.Question {
	var answered, unanswered []*models.Question
	for _, q := range questions {
		if q.Answered() {
			answered = append(answered, q)
		} else {
			unanswered = append(unanswered, q)
		}
	}

	sort.SliceStable(answered, func(i, j int) bool {
		return answered[i].LastActivity().After(answered[j].LastActivity())
	})
	unanswered = sortNewest(unanswered)

	return append(answered, unanswered...)
}
