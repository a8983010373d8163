package router

import (
	"log/slog"
	"net/http"

	"moviehub/internal/config"
	"moviehub/internal/handler"
	"moviehub/internal/middleware"
	"moviehub/internal/repository"
	"moviehub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New assembles the whole API: repositories, services, handlers and the
// middleware chain, and returns the engine ready to run.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger *slog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	codes := service.NewConfirmationCodeStore(rdb, cfg.JWTSecret, cfg.ConfirmationTTL)
	mailer := service.NewLogMailer(logger)

	authService := service.NewAuthService(userRepo, refreshTokenRepo, codes, mailer, cfg)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, genreRepo, categoryRepo, cfg.TitleMinYear)
	reviewService := service.NewReviewService(reviewRepo, titleRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	pages := handler.PageConfig{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, pages)
	categoryHandler := handler.NewCategoryHandler(categoryService, pages)
	genreHandler := handler.NewGenreHandler(genreService, pages)
	titleHandler := handler.NewTitleHandler(titleService, pages)
	reviewHandler := handler.NewReviewHandler(reviewService, pages)
	commentHandler := handler.NewCommentHandler(commentService, pages)

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is alive"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(middleware.OptionalAuth(authService))

	authLimit := middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateBurst)
	authHandler.RegisterRoutes(v1, authLimit)
	userHandler.RegisterRoutes(v1)
	categoryHandler.RegisterRoutes(v1)
	genreHandler.RegisterRoutes(v1)
	titleHandler.RegisterRoutes(v1)
	reviewHandler.RegisterRoutes(v1)
	commentHandler.RegisterRoutes(v1)

	return r
}
