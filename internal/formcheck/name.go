// Package formcheck holds field checks for step settings that are not part of
// the notification request itself.
package formcheck

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/norm"
)

// MinNameLength is the shortest name accepted without a warning.
const MinNameLength = 4

// Kind grades a check result.
type Kind int

const (
	OK Kind = iota
	Warning
	Error
)

func (k Kind) String() string {
	switch k {
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return "OK"
	}
}

// Result is the outcome of a single field check.
type Result struct {
	Kind    Kind
	Message string
}

func (r Result) String() string {
	if r.Message == "" {
		return r.Kind.String()
	}
	return r.Kind.String() + ": " + r.Message
}

const (
	msgMissingName = "Please set a name"
	msgTooShort    = "Isn't the name too short?"
	msgAccented    = "The name contains accented characters"
)

var combiningMarks = runes.In(unicode.Mn)

// CheckName grades a free-text name: empty is an error, fewer than
// MinNameLength characters is a warning, and accented letters are a warning
// unless allowAccents is set.
func CheckName(value string, allowAccents bool) Result {
	if value == "" {
		return Result{Kind: Error, Message: msgMissingName}
	}
	if utf8.RuneCountInString(value) < MinNameLength {
		return Result{Kind: Warning, Message: msgTooShort}
	}
	if !allowAccents && HasAccents(value) {
		return Result{Kind: Warning, Message: msgAccented}
	}
	return Result{Kind: OK}
}

// HasAccents reports whether value contains a letter carrying a diacritic,
// precomposed (é) or combining (e + U+0301).
func HasAccents(value string) bool {
	for _, r := range norm.NFD.String(value) {
		if combiningMarks.Contains(r) {
			return true
		}
	}
	return false
}
