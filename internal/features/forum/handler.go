package forum

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/commune-hq/community-server-go/internal/middleware"
	"github.com/commune-hq/community-server-go/pkg/metrics"
	"github.com/commune-hq/community-server-go/pkg/response"
	"github.com/commune-hq/community-server-go/pkg/validation"
)

// Handler processes forum HTTP requests.
type Handler struct {
	db         *gorm.DB
	logger     *slog.Logger
	engagement *EngagementService
}

// NewHandler constructs a forum handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger, engagement *EngagementService) *Handler {
	return &Handler{db: db, logger: logger, engagement: engagement}
}

// Create registers a new forum owned by the authenticated viewer. The
// response keys match the legacy API.
func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Name        string  `json:"name"`
		Photo       *string `json:"photo"`
		Description *string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid forum payload", err)
		return
	}

	currentUser, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	f, err := Create(h.db, CreateInput{
		Name:        req.Name,
		Photo:       req.Photo,
		Description: req.Description,
		CreatedByID: currentUser.ID,
	})
	if err != nil {
		h.respondError(c, err, "failed to create forum")
		return
	}

	viewerID := currentUser.ID
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"forum":   NewView(f, &viewerID),
	})
}

// ListAll returns every forum. Anonymous viewers get the plain catalog;
// authenticated viewers additionally see their isFollowing flag per
// forum.
func (h *Handler) ListAll(c *gin.Context) {
	forums, err := ListAll(h.db)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load forums", err)
		return
	}

	views := NewListViews(forums, h.viewerID(c))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"range":   len(views),
		"forums":  views,
	})
}

// GetOne returns a single forum with followers, discussions and topics.
// A `name` query parameter takes precedence over the path id, matching
// the legacy lookup contract.
func (h *Handler) GetOne(c *gin.Context) {
	name := c.Query("name")

	var id uuid.UUID
	if name == "" {
		parsed, err := uuid.Parse(c.Param("forumId"))
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid forum id", err)
			return
		}
		id = parsed
	}

	f, err := GetDetail(h.db, name, id)
	if err != nil {
		h.respondError(c, err, "failed to load forum")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"forum":   NewDetailView(f, h.viewerID(c)),
	})
}

// Follow enrolls the viewer in the forum named in the request body.
// Re-following is a conflict rather than a silent success, so clients
// learn their membership state is already what they asked for.
func (h *Handler) Follow(c *gin.Context) {
	name, currentUser, ok := h.bindFollowRequest(c)
	if !ok {
		return
	}

	f, err := Follow(h.db, name, currentUser.ID)
	if err != nil {
		h.respondError(c, err, "failed to follow forum")
		return
	}

	metrics.RecordFollow()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Now following " + f.Name,
	})
}

// Unfollow removes the viewer's membership edge and responds 204 with no
// body.
func (h *Handler) Unfollow(c *gin.Context) {
	name, currentUser, ok := h.bindUnfollowRequest(c)
	if !ok {
		return
	}

	if err := Unfollow(h.db, name, currentUser.ID); err != nil {
		h.respondError(c, err, "failed to unfollow forum")
		return
	}

	metrics.RecordUnfollow()
	response.NoContent(c)
}

// Engagement returns all forums ordered by discussion volume, with the
// viewer's isFollowing flag annotated onto the cached ranking.
func (h *Handler) Engagement(c *gin.Context) {
	currentUser, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	ranked, err := h.engagement.Ranked(c.Request.Context())
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to rank forums", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"forums":  AnnotateForViewer(ranked, currentUser.ID),
	})
}

// bindFollowRequest parses the follow payload. Clients send the target
// as `forum_name` on follow but as `name` on unfollow, and both spellings
// are in the wild, so each endpoint binds its own field.
func (h *Handler) bindFollowRequest(c *gin.Context) (string, *middleware.User, bool) {
	var req struct {
		ForumName string `json:"forum_name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "forum_name is required", err)
		return "", nil, false
	}

	return h.resolveViewer(c, req.ForumName)
}

// bindUnfollowRequest parses the unfollow payload.
func (h *Handler) bindUnfollowRequest(c *gin.Context) (string, *middleware.User, bool) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "forum name is required", err)
		return "", nil, false
	}

	return h.resolveViewer(c, req.Name)
}

func (h *Handler) resolveViewer(c *gin.Context, name string) (string, *middleware.User, bool) {
	currentUser, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return "", nil, false
	}

	return name, currentUser, true
}

func (h *Handler) viewerID(c *gin.Context) *uuid.UUID {
	currentUser, ok := middleware.GetUserFromContext(c)
	if !ok {
		return nil
	}
	id := currentUser.ID
	return &id
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrForumNotFound):
		status = http.StatusNotFound
		message = "Forum does not exist."
	case errors.Is(err, ErrNameExists):
		status = http.StatusConflict
		message = "A forum with this name already exists."
	case errors.Is(err, ErrAlreadyMember):
		status = http.StatusConflict
		message = "Already following this forum."
	case errors.Is(err, ErrNotMember):
		status = http.StatusBadRequest
		message = "User not enrolled in forum"
	case errors.Is(err, ErrNameRequired):
		status = http.StatusBadRequest
		message = "Forum name is required."
	case errors.Is(err, validation.ErrInvalidForumName):
		status = http.StatusBadRequest
		message = err.Error()
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
