// Package validate contains pure field validators for fox and account input.
// Each validator either returns the normalized value or reports rejection;
// none of them touch storage.
package validate

import (
	"regexp"
	"strings"
)

const maxNotesLen = 25

var (
	maidenheadRe   = regexp.MustCompile(`^[A-R]{2}\d{2}[A-X]{2}$`)
	sixDigitsRe    = regexp.MustCompile(`^\d{6}$`)
	sixAlnumRe     = regexp.MustCompile(`^[A-Z0-9]{6}$`)
	freqDecimalRe  = regexp.MustCompile(`^\d{1,4}\.\d{1,3}$`)
	freqPlainRe    = regexp.MustCompile(`^\d{3,8}$`)
	modeRe         = regexp.MustCompile(`^[A-Z]{2,4}$`)
	rfPowerRe      = regexp.MustCompile(`^[A-Z0-9]{1,5}$`)
	usernameRe     = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	serialNumberRe = regexp.MustCompile(`^\d{8}$`)
)

// GridSquare normalizes and validates a 6-character location code.
// Accepted forms: Maidenhead (2 letters A-R, 2 digits, 2 letters A-X),
// 6 digits, or 6 uppercase alphanumerics.
func GridSquare(s string) (string, bool) {
	g := strings.ToUpper(strings.TrimSpace(s))
	if len(g) != 6 {
		return "", false
	}
	if maidenheadRe.MatchString(g) || sixDigitsRe.MatchString(g) || sixAlnumRe.MatchString(g) {
		return g, true
	}
	return "", false
}

// Frequency validates a frequency string such as "146.520" or "146520".
// Format only; there is no numeric range check.
func Frequency(s string) (string, bool) {
	f := strings.TrimSpace(s)
	if len(f) < 3 || len(f) > 8 {
		return "", false
	}
	if freqDecimalRe.MatchString(f) || freqPlainRe.MatchString(f) {
		return f, true
	}
	return "", false
}

// Mode validates a 2-4 letter transmission mode (FM, SSB, CW, ...).
func Mode(s string) (string, bool) {
	m := strings.ToUpper(strings.TrimSpace(s))
	if modeRe.MatchString(m) {
		return m, true
	}
	return "", false
}

// RFPower validates a 1-5 character alphanumeric power string (5W, 100MW, ...).
func RFPower(s string) (string, bool) {
	p := strings.ToUpper(strings.TrimSpace(s))
	if rfPowerRe.MatchString(p) {
		return p, true
	}
	return "", false
}

// Notes trims and silently truncates notes to 25 characters. Never rejects.
func Notes(s string) string {
	n := strings.TrimSpace(s)
	if len(n) > maxNotesLen {
		return n[:maxNotesLen]
	}
	return n
}

// Username validates an account name: at least 3 characters, letters,
// digits and underscores only.
func Username(s string) (string, bool) {
	u := strings.TrimSpace(s)
	if len(u) < 3 || !usernameRe.MatchString(u) {
		return "", false
	}
	return u, true
}

// Password reports whether a password meets the minimum length.
func Password(s string) bool {
	return len(s) >= 6
}

// SerialNumber reports whether s looks like an 8-digit serial.
// Matching against a fox is done elsewhere, byte for byte.
func SerialNumber(s string) bool {
	return serialNumberRe.MatchString(s)
}
