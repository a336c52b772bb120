package topic

import (
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

// Handler processes topic HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a topic handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// List returns topics for a forum with pagination.
func (h *Handler) List(c *gin.Context) {
	forumID, err := uuid.Parse(c.Param("forumId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid forum id", err)
		return
	}

	params := pagination.Extract(c)

	topics, total, err := GetByForum(h.db, forumID, params.Limit, params.Skip)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load topics", err)
		return
	}

	response.Success(c, http.StatusOK, topics, "", pagination.MetadataFrom(total, params))
}

// GetByID fetches a single topic with answers and replies.
func (h *Handler) GetByID(c *gin.Context) {
	topicID, err := uuid.Parse(c.Param("topicId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid topic id", err)
		return
	}

	t, err := Get(h.db, topicID)
	if err != nil {
		h.respondError(c, err, "failed to load topic")
		return
	}

	response.Success(c, http.StatusOK, t, "", nil)
}

// Create inserts a new topic in a forum.
func (h *Handler) Create(c *gin.Context) {
	forumID, err := uuid.Parse(c.Param("forumId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid forum id", err)
		return
	}

	var req struct {
		Title   string   `json:"title" binding:"required"`
		Content string   `json:"content" binding:"required"`
		Tags    []string `json:"tags"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid topic payload", err)
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

	t, err := Create(h.db, CreateInput{
		ForumID:    forumID,
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		AuthorID:   currentUser.ID,
		AuthorName: currentUser.FirstName + " " + currentUser.LastName,
	})
	if err != nil {
		h.respondError(c, err, "failed to create topic")
		return
	}

	response.Created(c, t, "")
}

// Answer appends an answer to an existing topic.
func (h *Handler) Answer(c *gin.Context) {
	topicID, err := uuid.Parse(c.Param("topicId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid topic id", err)
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid answer payload", err)
		return
	}

	currentUser, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	t, err := AddAnswer(h.db, topicID, Answer{
		AuthorID:   currentUser.ID,
		AuthorName: currentUser.FirstName + " " + currentUser.LastName,
		Content:    req.Content,
	})
	if err != nil {
		h.respondError(c, err, "failed to add answer")
		return
	}

	response.Success(c, http.StatusOK, t, "", nil)
}

// forumExists checks the forums table directly to avoid an import cycle
// with the forum feature.
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
	case errors.Is(err, ErrTopicNotFound):
		status = http.StatusNotFound
		message = "Topic not found."
	case errors.Is(err, ErrForumNotFound):
		status = http.StatusNotFound
		message = "Forum does not exist."
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrContentRequired):
		status = http.StatusBadRequest
		message = err.Error()
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
