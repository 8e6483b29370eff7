package profiling

import (
	"strings"
	"time"

	"datascope/domain/dataset"
	"datascope/domain/stats"
)

// typeShareThreshold is the fraction of non-blank values that must parse
// as a given type before a column is labeled with it.
const typeShareThreshold = 0.8

// DateParser decides whether a text cell is a date. Injected so date
// detection uses a fixed format set instead of ambient locale rules.
type DateParser interface {
	Parse(s string) (time.Time, bool)
}

// formatDateParser tries a fixed list of layouts in order.
type formatDateParser struct {
	formats []string
}

// NewDateParser returns the default parser with the documented format set.
func NewDateParser() DateParser {
	return &formatDateParser{
		formats: []string{
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02",
			"01/02/2006",
			"2006/01/02",
			"02-Jan-2006",
		},
	}
}

func (p *formatDateParser) Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, format := range p.formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Classifier labels columns numeric, categorical, or date from their
// raw values. Pure and deterministic given identical input order.
type Classifier struct {
	dates DateParser
}

// NewClassifier creates a classifier with the given date parser
func NewClassifier(dates DateParser) *Classifier {
	return &Classifier{dates: dates}
}

// Classify infers a column's type. Null and blank cells are dropped
// first; an all-empty column defaults to categorical. The numeric check
// runs before the date check, so a column that clears both thresholds
// is numeric.
func (c *Classifier) Classify(values []dataset.Value) stats.ColumnType {
	nonBlank := 0
	numericCount := 0
	dateCount := 0

	for _, v := range values {
		if v.IsNull() {
			continue
		}
		if v.IsText() && strings.TrimSpace(v.Text()) == "" {
			continue
		}
		nonBlank++

		if v.IsNumber() {
			numericCount++
			continue
		}
		if v.IsText() {
			if _, ok := c.dates.Parse(v.Text()); ok {
				dateCount++
			}
		}
	}

	if nonBlank == 0 {
		return stats.TypeCategorical
	}

	if float64(numericCount)/float64(nonBlank) > typeShareThreshold {
		return stats.TypeNumeric
	}
	if float64(dateCount)/float64(nonBlank) > typeShareThreshold {
		return stats.TypeDate
	}
	return stats.TypeCategorical
}
