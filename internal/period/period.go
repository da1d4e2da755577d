// Package period works with monthly reporting periods in YYYY-MM form.
// Every transaction date buckets into the period given by its first seven
// characters.
package period

import (
	"regexp"
	"time"
)

// BucketLen is the length of a YYYY-MM period string.
const BucketLen = 7

var periodRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Current returns the real-world period for the current date.
func Current() string {
	return time.Now().Format("2006-01")
}

// IsValid reports whether s is a well-formed YYYY-MM period.
func IsValid(s string) bool {
	return periodRegex.MatchString(s)
}

// Bucket returns the period an ISO transaction date falls into: the first
// seven characters of the date. Returns the empty string when the date is
// too short to contain a period.
func Bucket(isoDate string) string {
	if len(isoDate) < BucketLen {
		return ""
	}
	return isoDate[:BucketLen]
}
