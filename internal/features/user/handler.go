package user

import (
	"errors"
	"fmt"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/commune-hq/community-server-go/internal/middleware"
	"github.com/commune-hq/community-server-go/pkg/request"
	"github.com/commune-hq/community-server-go/pkg/response"
)

// Handler processes user HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a user handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// Me returns the authenticated user's own record plus the ids of the
// forums they follow.
func (h *Handler) Me(c *gin.Context) {
	currentUser, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	usr, err := Get(h.db, currentUser.ID)
	if err != nil {
		h.respondError(c, err, "failed to load user")
		return
	}

	// Followed forum ids come off the membership relation directly;
	// importing the forum feature here would create an import cycle.
	var forumIDs []uuid.UUID
	err = h.db.Table("forum_memberships").
		Where("user_id = ?", usr.ID).
		Order("created_at ASC").
		Pluck("forum_id", &forumIDs).Error
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load followed forums", err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":   usr,
		"forums": forumIDs,
	}, "", nil)
}

// UpdateMe applies a partial update to the viewer's own profile. The
// payload is loosely typed, so each present field is read and checked
// individually.
func (h *Handler) UpdateMe(c *gin.Context) {
	currentUser, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	body := map[string]interface{}{}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid user payload", err)
		return
	}

	input, err := parseProfilePatch(body)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, err.Error(), err)
		return
	}

	usr, err := Update(h.db, currentUser.ID, input)
	if err != nil {
		h.respondError(c, err, "failed to update user")
		return
	}

	response.Success(c, http.StatusOK, usr, "Profile updated", nil)
}

// parseProfilePatch converts a loosely-typed JSON body into typed update
// fields, rejecting values of the wrong shape.
func parseProfilePatch(body map[string]interface{}) (UpdateInput, error) {
	input := UpdateInput{}

	if value, ok := body["firstName"]; ok {
		str, err := request.ReadString(value)
		if err != nil {
			return input, fmt.Errorf("firstName must be a non-empty string")
		}
		input.FirstName = &str
	}

	if value, ok := body["lastName"]; ok {
		str, err := request.ReadString(value)
		if err != nil {
			return input, fmt.Errorf("lastName must be a non-empty string")
		}
		input.LastName = &str
	}

	if value, ok := body["middleName"]; ok {
		str, err := request.ReadString(value)
		if err != nil {
			return input, fmt.Errorf("middleName must be a non-empty string")
		}
		input.MiddleName = &str
	}

	if value, ok := body["occupation"]; ok {
		str, err := request.ReadString(value)
		if err != nil {
			return input, fmt.Errorf("occupation must be a non-empty string")
		}
		input.Occupation = &str
	}

	if value, ok := body["photo"]; ok {
		str, err := request.ReadString(value)
		if err != nil {
			return input, fmt.Errorf("photo must be a non-empty string")
		}
		input.Photo = &str
	}

	return input, nil
}

// GetByID returns the public profile of a user.
func (h *Handler) GetByID(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	usr, err := Get(h.db, userID)
	if err != nil {
		h.respondError(c, err, "failed to load user")
		return
	}

	response.Success(c, http.StatusOK, usr.AsProfile(), "", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrUserNotFound):
		status = http.StatusNotFound
		message = "User not found."
	case errors.Is(err, ErrEmailExists):
		status = http.StatusConflict
		message = "A user with this email already exists."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
