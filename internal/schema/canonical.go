// Package schema canonicalizes raw workbook headers and reconciles the
// naming drift the ledger accumulated across its rewrites. Normalization
// never fails: unknown columns pass through, malformed values coerce to
// documented defaults.
package schema

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dualcred/ledger-cli/internal/model"
)

// Canonicalize converts a raw column label into its canonical identifier:
// trimmed, lower-cased, diacritics stripped, spaces to underscores, percent
// signs to the "pct" token, and the punctuation ()?. removed.
func Canonicalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = stripDiacritics(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "%", "pct_")
	for _, p := range []string{"(", ")", "?", "."} {
		s = strings.ReplaceAll(s, p, "")
	}
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}

// stripDiacritics transliterates accented characters to plain ASCII
// equivalents ("comissão" -> "comissao").
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// dateLayouts are tried in order when parsing a date cell.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"02-01-2006",
	"02-01-06",
}

// xlsx serial dates count days from this epoch.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate parses a date cell. Unparsable or empty input yields
// model.DefaultDate, never an error.
func ParseDate(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return model.DefaultDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	// Spreadsheet serial number.
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 59 && f < 300000 {
		return serialEpoch.AddDate(0, 0, int(f))
	}
	return model.DefaultDate
}

// ParseDecimal parses a numeric cell rounded to two places. Handles plain
// decimals, Brazilian formatting (1.234,56), and a leading currency token.
// Unparsable input yields zero, never an error.
func ParseDecimal(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d.Round(2)
}
