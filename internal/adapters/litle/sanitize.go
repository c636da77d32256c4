package litle

import (
	"regexp"
	"strings"
)

// cardNumberPattern isolates the last four digits of a number element
// so the rest can be masked with a matching run of x's
var cardNumberPattern = regexp.MustCompile(`<number>(.*)(\d{4})</number>`)

// Sanitizer scrubs payloads before they reach the logs: credential
// elements are emptied and card numbers keep only their last four
// digits. The redacted element set is extensible; "password" is always
// included.
type Sanitizer struct {
	patterns     []*regexp.Regexp
	replacements []string
}

// NewSanitizer builds a sanitizer redacting the password element plus
// any additional element names supplied
func NewSanitizer(fields ...string) *Sanitizer {
	names := append([]string{"password"}, fields...)
	s := &Sanitizer{}
	for _, name := range names {
		quoted := regexp.QuoteMeta(name)
		s.patterns = append(s.patterns, regexp.MustCompile(`<`+quoted+`>.*?</`+quoted+`>`))
		s.replacements = append(s.replacements, "<"+name+"></"+name+">")
	}
	return s
}

// Sanitize returns a copy of payload safe for logging
func (s *Sanitizer) Sanitize(payload string) string {
	for i, p := range s.patterns {
		payload = p.ReplaceAllString(payload, s.replacements[i])
	}
	return cardNumberPattern.ReplaceAllStringFunc(payload, func(m string) string {
		sub := cardNumberPattern.FindStringSubmatch(m)
		return "<number>" + strings.Repeat("x", len(sub[1])) + sub[2] + "</number>"
	})
}
