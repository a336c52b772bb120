package topic

import "errors"

var (
	ErrTopicNotFound   = errors.New("topic not found")
	ErrForumNotFound   = errors.New("forum not found")
	ErrTitleRequired   = errors.New("topic title is required")
	ErrContentRequired = errors.New("topic content is required")
)
