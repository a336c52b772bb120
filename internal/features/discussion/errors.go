package discussion

import "errors"

var (
	ErrDiscussionNotFound = errors.New("discussion not found")
	ErrForumNotFound      = errors.New("forum not found")
	ErrTitleRequired      = errors.New("discussion title is required")
	ErrContentRequired    = errors.New("discussion content is required")
)
