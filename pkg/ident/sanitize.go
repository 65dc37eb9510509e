// Package ident sanitizes categorical level strings into valid derived
// column name fragments. It generalizes the unique-map
// construction idiom from pkg/dataprep/encode.go (which
// built first-seen `map[string]int` level indices for label/one-hot
// encoding) into a name sanitizer with deterministic collision handling.
package ident

import (
	"strconv"
	"strings"
	"unicode"
)

// Sanitize turns an arbitrary level string into a valid identifier
// fragment: lowercase ASCII letters, non-alphanumerics mapped to `_`,
// negative signs prefixed with `minus_`, pure-digit starts prefixed with
// `x_`, and runs of `_` collapsed.
func Sanitize(level string) string {
	s := level
	if strings.HasPrefix(s, "-") {
		s = "minus_" + s[1:]
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	collapsed := collapseUnderscores(b.String())
	collapsed = strings.Trim(collapsed, "_")
	if collapsed == "" {
		collapsed = "empty"
	}
	if isDigitStart(collapsed) {
		collapsed = "x_" + collapsed
	}
	return collapsed
}

func collapseUnderscores(s string) string {
	var b strings.Builder
	prevUnderscore := false
	for _, r := range s {
		if r == '_' {
			if prevUnderscore {
				continue
			}
			prevUnderscore = true
		} else {
			prevUnderscore = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isDigitStart(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.Atoi(s[:1])
	return err == nil
}

// Deduper resolves sanitized-name collisions by appending `_2`, `_3`, ...
// to repeats, in the order Resolve is called.
type Deduper struct {
	seen map[string]int
}

// NewDeduper returns a fresh, empty deduper.
func NewDeduper() *Deduper {
	return &Deduper{seen: map[string]int{}}
}

// Resolve returns name unchanged the first time it is seen, and
// name_2, name_3, ... on subsequent collisions.
func (d *Deduper) Resolve(name string) string {
	count := d.seen[name]
	d.seen[name] = count + 1
	if count == 0 {
		return name
	}
	return name + "_" + strconv.Itoa(count+1)
}

// ColumnName builds a derived column name from an origin column and an
// encoder-kind suffix, e.g. ColumnName("state", "impact") -> "state_impact".
func ColumnName(origin, suffix string) string {
	return origin + "_" + suffix
}

// LevelColumnName builds an indicator column name from an origin column
// and a sanitized level, e.g. LevelColumnName("state", "ca") -> "state_lev_ca".
func LevelColumnName(origin, sanitizedLevel string) string {
	return origin + "_lev_" + sanitizedLevel
}

// ClassColumnName prefixes a derived column name with a multinomial class
// label, e.g. ClassColumnName("large", "state_impact") -> "large_state_impact".
func ClassColumnName(class, name string) string {
	return Sanitize(class) + "_" + name
}
