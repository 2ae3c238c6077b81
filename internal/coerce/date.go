package coerce

import (
	"fmt"
	"strings"
	"time"

	"layout-converter/internal/common"
	"layout-converter/internal/mapping"
)

const isoLayout = "2006-01-02"

// minCompactYear rejects compact digit parses in the wrong field order, such
// as 20100506 read as day 20, month 10, year 0506.
const minCompactYear = 1900

// dateLayouts are tried after ISO, in order.
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
	"2006/1/2",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate parses a date written in ISO form, a common dd/mm/yyyy variant or
// compact digits (ddmmyyyy, yyyymmdd, ddmmyy, yymmdd). Compact digits are
// tried in the order that matches prefer first.
func ParseDate(raw string, prefer mapping.DateFormat) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrUnparseableDate)
	}

	if len(s) >= len(isoLayout) {
		if t, err := time.Parse(isoLayout, s[:len(isoLayout)]); err == nil {
			return t, nil
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	if head, _, ok := strings.Cut(s, " "); ok {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, head); err == nil {
				return t, nil
			}
		}
	}

	if common.IsDigits(s) {
		for _, layout := range compactLayouts(len(s), prefer) {
			if t, err := time.Parse(layout, s); err == nil && t.Year() >= minCompactYear {
				return t, nil
			}
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, raw)
}

func compactLayouts(n int, prefer mapping.DateFormat) []string {
	var dayFirst, yearFirst string

	switch n {
	case 8:
		dayFirst, yearFirst = "02012006", "20060102"
	case 6:
		dayFirst, yearFirst = "020106", "060102"
	default:
		return nil
	}

	if prefer == mapping.DateYYYYMMDD {
		return []string{yearFirst, dayFirst}
	}

	return []string{dayFirst, yearFirst}
}

// FormatDate formats t per the date format. An empty format renders dd/mm/yyyy.
func FormatDate(t time.Time, f mapping.DateFormat) string {
	return t.Format(f.GoLayout())
}
