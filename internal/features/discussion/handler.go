package discussion

import (
	"context"
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/commune-hq/community-server-go/internal/middleware"
	"github.com/commune-hq/community-server-go/pkg/pagination"
	"github.com/commune-hq/community-server-go/pkg/response"
)

// RankingInvalidator drops cached engagement rankings after writes that
// change discussion counts.
type RankingInvalidator interface {
	Invalidate(ctx context.Context)
}

// Handler processes discussion HTTP requests.
type Handler struct {
	db      *gorm.DB
	logger  *slog.Logger
	ranking RankingInvalidator
}

// NewHandler constructs a discussion handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger, ranking RankingInvalidator) *Handler {
	return &Handler{db: db, logger: logger, ranking: ranking}
}

// List returns discussions for a forum with pagination.
func (h *Handler) List(c *gin.Context) {
	forumID, err := uuid.Parse(c.Param("forumId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid forum id", err)
		return
	}

	params := pagination.Extract(c)

	discussions, total, err := GetByForum(h.db, forumID, params.Limit, params.Skip)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load discussions", err)
		return
	}

	response.Success(c, http.StatusOK, discussions, "", pagination.MetadataFrom(total, params))
}

// GetByID fetches a single discussion with all replies.
func (h *Handler) GetByID(c *gin.Context) {
	discussionID, err := uuid.Parse(c.Param("discussionId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid discussion id", err)
		return
	}

	disc, err := Get(h.db, discussionID)
	if err != nil {
		h.respondError(c, err, "failed to load discussion")
		return
	}

	response.Success(c, http.StatusOK, disc, "", nil)
}

// Create inserts a new discussion in a forum.
func (h *Handler) Create(c *gin.Context) {
	forumID, err := uuid.Parse(c.Param("forumId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid forum id", err)
		return
	}

	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid discussion payload", err)
		return
	}

	currentUser, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	if err := h.forumExists(forumID); err != nil {
		h.respondError(c, err, "failed to load forum")
		return
	}

	disc, err := Create(h.db, CreateInput{
		ForumID:    forumID,
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   currentUser.ID,
		AuthorName: currentUser.FirstName + " " + currentUser.LastName,
	})
	if err != nil {
		h.respondError(c, err, "failed to create discussion")
		return
	}

	if h.ranking != nil {
		h.ranking.Invalidate(c.Request.Context())
	}

	response.Created(c, disc, "")
}

// Reply appends a reply to an existing discussion.
func (h *Handler) Reply(c *gin.Context) {
	discussionID, err := uuid.Parse(c.Param("discussionId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid discussion id", err)
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid reply payload", err)
		return
	}

	currentUser, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	disc, err := AddReply(h.db, discussionID, Reply{
		AuthorID:   currentUser.ID,
		AuthorName: currentUser.FirstName + " " + currentUser.LastName,
		Content:    req.Content,
	})
	if err != nil {
		h.respondError(c, err, "failed to add reply")
		return
	}

	response.Success(c, http.StatusOK, disc, "", nil)
}

// forumExists checks the forums table directly; importing the forum
// feature here would create an import cycle.
func (h *Handler) forumExists(forumID uuid.UUID) error {
	var count int64
	if err := h.db.Table("forums").Where("id = ?", forumID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrForumNotFound
	}
	return nil
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrDiscussionNotFound):
		status = http.StatusNotFound
		message = "Discussion not found."
	case errors.Is(err, ErrForumNotFound):
		status = http.StatusNotFound
		message = "Forum does not exist."
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrContentRequired):
		status = http.StatusBadRequest
		message = err.Error()
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
