package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/commune-hq/community-server-go/internal/features/auth"
	"github.com/commune-hq/community-server-go/internal/features/discussion"
	"github.com/commune-hq/community-server-go/internal/features/forum"
	"github.com/commune-hq/community-server-go/internal/features/topic"
	"github.com/commune-hq/community-server-go/internal/features/user"
	"github.com/commune-hq/community-server-go/internal/middleware"
	"github.com/commune-hq/community-server-go/pkg/config"
	"github.com/commune-hq/community-server-go/pkg/health"
)

// Register wires every endpoint of the API onto the engine. The
// engagement service is shared between the forum handler (serving the
// ranking) and the discussion handler (invalidating it on writes).
func Register(engine *gin.Engine, cfg *config.Config, db *gorm.DB, logger *slog.Logger, engagement *forum.EngagementService) {
	healthHandler := health.NewHandler(db, logger)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/version", healthHandler.VersionInfo)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := middleware.NewAuth(db, cfg.JWTSecret, logger)
	required := authMiddleware.Required()
	optional := authMiddleware.Optional()

	api := engine.Group("/api")

	auth.RegisterRoutes(api, auth.NewHandler(db, logger, cfg))
	user.RegisterRoutes(api, user.NewHandler(db, logger), required)
	forum.RegisterRoutes(api, forum.NewHandler(db, logger, engagement), required, optional)
	discussion.RegisterRoutes(api, discussion.NewHandler(db, logger, engagement), required)
	topic.RegisterRoutes(api, topic.NewHandler(db, logger), required)
}
