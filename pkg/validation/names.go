package validation

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidForumName is returned for names that fail the format check.
var ErrInvalidForumName = errors.New("invalid forum name. Use 3-60 characters (letters, numbers, spaces, . _ ' -)")

// Forum names are matched case-sensitively, so normalization only trims;
// the pattern keeps names printable and URL-safe enough for clients.
var forumNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ._'-]{2,59}$`)

// NormalizeForumName trims a forum name and validates its format.
// Valid names are 3-60 characters starting with a letter or digit.
func NormalizeForumName(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if !forumNameRegex.MatchString(trimmed) {
		return "", ErrInvalidForumName
	}
	return trimmed, nil
}
