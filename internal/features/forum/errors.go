package forum

import "errors"

var (
	ErrForumNotFound = errors.New("forum does not exist")
	ErrNameRequired  = errors.New("forum name is required")
	ErrNameExists    = errors.New("a forum with this name already exists")
	ErrAlreadyMember = errors.New("user is already enrolled in this forum")
	ErrNotMember     = errors.New("user is not enrolled in this forum")
)
