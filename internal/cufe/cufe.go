// Package cufe validates and extracts CUFE codes, the 96-character
// hexadecimal identifiers assigned to Colombian electronic invoices.
//
// Validation here is a pure format check. It does not verify the code
// against DIAN, the issuing authority.
package cufe

import (
	"regexp"
	"strings"
	"unicode"
)

// Length is the exact number of hexadecimal characters in a CUFE.
const Length = 96

var (
	cufeRegex   = regexp.MustCompile(`^[0-9a-fA-F]{96}$`)
	hexRunRegex = regexp.MustCompile(`[0-9a-fA-F]{96}`)
)

// dianHints are substrings that identify a QR payload as coming from the
// DIAN electronic invoicing portal. Matching is case-insensitive.
var dianHints = []string{
	"dian.gov.co",
	"catalogo-vpfe",
	"facturaelectronica",
	"documentkey",
	"cufe",
}

// IsValidFormat reports whether code, after trimming surrounding whitespace,
// is exactly 96 hexadecimal characters in either case.
func IsValidFormat(code string) bool {
	return cufeRegex.MatchString(strings.TrimSpace(code))
}

// Normalize strips all whitespace from code and upper-cases the result.
// It must be applied before any uniqueness check or storage write so that
// inputs differing only by case or incidental whitespace collide instead of
// creating duplicate records. Normalize is idempotent.
func Normalize(code string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, code)
	return strings.ToUpper(stripped)
}

// Validate checks a CUFE code and, when invalid, explains why.
// An empty code is reported distinctly from a malformed one.
func Validate(code string) (bool, string) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return false, "CUFE code is empty"
	}
	if !cufeRegex.MatchString(trimmed) {
		return false, "CUFE code must be exactly 96 hexadecimal characters"
	}
	return true, ""
}

// ExtractFromQRPayload scans free-form QR-decoded text for the first
// 96-character hexadecimal run and returns it. The second return value is
// false when no run is found. This is a best-effort heuristic, not a
// structured parser of the DIAN QR schema; arbitrary binary-looking input
// yields a not-found result rather than an error.
func ExtractFromQRPayload(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	match := hexRunRegex.FindString(text)
	if match == "" {
		return "", false
	}
	return match, true
}

// LooksLikeDIANInvoiceQR reports whether a QR payload contains any of the
// keyword substrings associated with the DIAN e-invoicing portal. It is a
// UX heuristic; false positives and negatives are accepted.
func LooksLikeDIANInvoiceQR(text string) bool {
	lower := strings.ToLower(text)
	for _, hint := range dianHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
