// Package normalize turns raw strings from bank exports and OCR text into
// typed values. Parsers here never fail: malformed input degrades to a safe
// default and the result says so, so one bad cell never aborts an import.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// AmountResult is a parsed monetary amount. WasDefaulted distinguishes a
// genuine zero from the zero we fall back to on unparseable input.
type AmountResult struct {
	Value        float64
	WasDefaulted bool
}

var (
	currencyTokenRe = regexp.MustCompile(`(?i)\b(PLN|zł|zl|zlot\w*|EUR|USD|GBP)\b`)
	parenNegRe      = regexp.MustCompile(`^[(\x{2212}-].*\)$`)
	amountJunkRe    = regexp.MustCompile(`[^0-9.\-]`)
)

// Amount parses a locale-tolerant monetary amount. Currency tokens and
// non-breaking spaces are stripped; parentheses, a leading ASCII minus or a
// figure dash mark a negative; a comma with no dot is a decimal comma, a
// comma next to a dot is a thousands separator. Anything unparseable yields
// a defaulted zero. Never returns NaN or Inf.
func Amount(raw string) AmountResult {
	s := strings.TrimSpace(strings.ReplaceAll(raw, " ", " "))
	if s == "" {
		return AmountResult{WasDefaulted: true}
	}

	neg := false
	if parenNegRe.MatchString(s) {
		neg = true
		s = strings.Trim(s, "()")
		s = strings.TrimLeft(s, "-−")
	}
	if strings.HasPrefix(s, "−") { // figure dash minus
		neg = true
		s = strings.TrimPrefix(s, "−")
	}

	s = currencyTokenRe.ReplaceAllString(s, "")

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	s = strings.ReplaceAll(s, " ", "")
	if hasComma && !hasDot {
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	s = amountJunkRe.ReplaceAllString(s, "")

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return AmountResult{WasDefaulted: true}
	}
	if neg && n > 0 {
		n = -n
	}
	return AmountResult{Value: n}
}

// AmountValue is Amount for callers that do not care about defaulting.
func AmountValue(raw string) float64 {
	return Amount(raw).Value
}
