// Package format produces and advances human-readable invoice numbers.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	seqPadRe  = regexp.MustCompile(`\{SEQ(\d+)\}`)
	periodRe  = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])$`)
	trailIntRe = regexp.MustCompile(`^(.*?)(\d+)$`)
)

const DefaultNumberTemplate = "INV-{YYYY}{MM}-{SEQ4}"

// Format renders an invoice number from a template, the issue time,
// and a monotonic sequence. Pure and deterministic.
//
// Supported tokens: {YYYY} {YY} {MM} {DD} {SEQ} {SEQn} (zero-padded
// to n digits).
func Format(template string, issuedAt time.Time, seq int64) (string, error) {
	if template == "" {
		return "", fmt.Errorf("invoice number template is empty")
	}
	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}

	out := template
	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))
	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))

	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}
		return fmt.Sprintf("%0*d", width, seq)
	})

	if strings.ContainsAny(out, "{}") {
		return "", fmt.Errorf("unresolved token in invoice number template: %s", out)
	}
	return out, nil
}

// Next advances an existing invoice number by one step.
//
// Three shapes are recognized:
//   - a period number "YYYY-MM", advanced by one month with year
//     rollover: "2024-03" -> "2024-04", "2024-12" -> "2025-01"
//   - a plain integer: "41" -> "42"
//   - any prefix ending in an integer, zero padding preserved:
//     "INV-0041" -> "INV-0042"
func Next(number string) (string, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return "", fmt.Errorf("invoice number is empty")
	}

	if m := periodRe.FindStringSubmatch(number); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		month++
		if month > 12 {
			month = 1
			year++
		}
		return fmt.Sprintf("%04d-%02d", year, month), nil
	}

	if m := trailIntRe.FindStringSubmatch(number); m != nil {
		n, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return "", fmt.Errorf("invoice number %q: %w", number, err)
		}
		return fmt.Sprintf("%s%0*d", m[1], len(m[2]), n+1), nil
	}

	return "", fmt.Errorf("cannot increment invoice number %q: no numeric component", number)
}
