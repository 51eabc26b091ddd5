package dialogue

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sandevgo/raider/internal/core"
)

const MaxSubjectLength = 200

// ValidateSubject returns the subject's identity: the input with surrounding
// whitespace removed. Case is significant.
func ValidateSubject(subject string) (string, error) {
	s := strings.TrimSpace(subject)
	if s == "" {
		return "", core.InvalidRequest("subject is empty")
	}
	if utf8.RuneCountInString(s) > MaxSubjectLength {
		return "", core.InvalidRequest("subject longer than %d characters", MaxSubjectLength)
	}
	if !utf8.ValidString(s) {
		return "", core.InvalidRequest("subject is not valid UTF-8")
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", core.InvalidRequest("subject contains control characters")
		}
	}
	return s, nil
}

// ValidateText rejects user text that is empty after trimming. Valid text
// is used verbatim.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return core.InvalidRequest("user text is empty")
	}
	return nil
}
