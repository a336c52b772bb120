package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/commune-hq/community-server-go/internal/utils/jwt"
	"github.com/commune-hq/community-server-go/pkg/response"
)

const userContextKey = "current_user"

// User is the authenticated viewer loaded into the request context. It is
// a narrow projection of the users table so the middleware does not depend
// on the user feature package.
type User struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey"`
	Email     string    `gorm:"column:email"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for the middleware user projection.
func (User) TableName() string { return "users" }

// Auth holds dependencies for authentication middleware.
type Auth struct {
	db        *gorm.DB
	jwtSecret string
	logger    *slog.Logger
}

// NewAuth creates the authentication middleware factory.
func NewAuth(db *gorm.DB, jwtSecret string, logger *slog.Logger) *Auth {
	return &Auth{db: db, jwtSecret: jwtSecret, logger: logger}
}

// Required validates the bearer token and loads the viewer into context,
// aborting with 401 when authentication fails.
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		usr, err := a.authenticate(c)
		if err != nil {
			response.ErrorWithLog(a.logger, c, http.StatusUnauthorized, "Authentication required.", err)
			c.Abort()
			return
		}

		SetUserInContext(c, usr)
		c.Next()
	}
}

// Optional loads the viewer when a valid token is present and proceeds
// anonymously otherwise. Listing and detail reads are viewer-agnostic but
// annotate isFollowing when a viewer exists.
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if usr, err := a.authenticate(c); err == nil {
			SetUserInContext(c, usr)
		}
		c.Next()
	}
}

// SetUserInContext stores the authenticated viewer on the request context.
func SetUserInContext(c *gin.Context, usr *User) {
	c.Set(userContextKey, usr)
}

func (a *Auth) authenticate(c *gin.Context) (*User, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, errors.New("no authorization header")
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	if token == "" {
		return nil, errors.New("empty bearer token")
	}

	claims, err := jwt.Verify(token, a.jwtSecret)
	if err != nil {
		return nil, err
	}

	var usr User
	if err := a.db.First(&usr, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("token user no longer exists")
		}
		return nil, err
	}

	return &usr, nil
}

// GetUserFromContext retrieves the authenticated viewer, if any.
func GetUserFromContext(c *gin.Context) (*User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}

	usr, ok := value.(*User)
	return usr, ok
}
