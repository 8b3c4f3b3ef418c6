package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateResult is a parsed date in ISO YYYY-MM-DD form. ISO is empty and
// WasDefaulted true when nothing date-like could be extracted.
type DateResult struct {
	ISO          string
	WasDefaulted bool
}

var (
	isoPrefixRe  = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	dottedDateRe = regexp.MustCompile(`^(\d{1,2})[.\-/](\d{1,2})[.\-/](\d{2,4})$`)
	namedDateRe  = regexp.MustCompile(`(\d{1,2})\s+(\p{L}+)\s+(\d{4})`)
)

// monthNames maps Polish and Russian genitive month names to month numbers.
var monthNames = map[string]string{
	"stycznia": "01", "lutego": "02", "marca": "03", "kwietnia": "04",
	"maja": "05", "czerwca": "06", "lipca": "07", "sierpnia": "08",
	"września": "09", "wrzesnia": "09", "października": "10",
	"pazdziernika": "10", "listopada": "11", "grudnia": "12",
	"января": "01", "февраля": "02", "марта": "03", "апреля": "04",
	"мая": "05", "июня": "06", "июля": "07", "августа": "08",
	"сентября": "09", "октября": "10", "ноября": "11", "декабря": "12",
}

// fallbackLayouts approximate the loose date parsing the bank exports rely
// on when none of the structured patterns apply.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// Date parses a date in any of the formats the bank exports and OCR text
// use: ISO (with or without a trailing time), day-first numeric with dots,
// dashes or slashes (two-digit years are assumed 2000s), or "<day>
// <month-name> <year>" with Polish or Russian month names. Unrecognized
// input yields an empty, defaulted result.
func Date(raw string) DateResult {
	s := strings.TrimSpace(raw)
	if s == "" {
		return DateResult{WasDefaulted: true}
	}

	if m := isoPrefixRe.FindString(s); m != "" {
		return DateResult{ISO: m}
	}

	if m := dottedDateRe.FindStringSubmatch(s); m != nil {
		dd := pad2(m[1])
		mm := pad2(m[2])
		yy := m[3]
		if len(yy) == 2 {
			yy = "20" + yy
		}
		return DateResult{ISO: fmt.Sprintf("%s-%s-%s", yy, mm, dd)}
	}

	if m := namedDateRe.FindStringSubmatch(s); m != nil {
		if mm, ok := monthNames[strings.ToLower(m[2])]; ok {
			return DateResult{ISO: fmt.Sprintf("%s-%s-%s", m[3], mm, pad2(m[1]))}
		}
		// Unknown month name: leave it to the generic layouts below.
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateResult{ISO: t.Format("2006-01-02")}
		}
	}
	return DateResult{WasDefaulted: true}
}

// DateValue is Date for callers that do not care about defaulting.
func DateValue(raw string) string {
	return Date(raw).ISO
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// DaysBetween returns the whole-day difference to - from for two ISO dates.
// Unparseable dates count as day zero.
func DaysBetween(from, to string) int {
	f, err1 := time.Parse("2006-01-02", from)
	t, err2 := time.Parse("2006-01-02", to)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(t.Sub(f).Hours() / 24)
}

// AddDays returns the ISO date days after the given ISO date.
func AddDays(iso string, days int) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.AddDate(0, 0, days).Format("2006-01-02")
}

// Today returns the current date in ISO form.
func Today() string {
	return time.Now().Format("2006-01-02")
}
