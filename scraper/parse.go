package scraper

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

// ParsePrice extracts a price value from marketplace text like "$1,250".
// Returns nil when no usable number is present; adapters prefer a missing
// price over failing the whole parse.
func ParsePrice(raw string) *float64 {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return nil
	}
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || val < 0 {
		return nil
	}
	return &val
}

// NormalizeText strips leading/trailing whitespace and collapses internal
// whitespace runs to single spaces.
func NormalizeText(s string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

// AbsoluteURL resolves href against base, returning href unchanged when
// it is already absolute or base is unparsable.
func AbsoluteURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}
