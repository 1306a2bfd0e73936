package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ykwizera/studysync/internal/cache"
	"github.com/ykwizera/studysync/internal/config"
	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/internal/handler"
	"github.com/ykwizera/studysync/internal/hub"
	"github.com/ykwizera/studysync/internal/repository"
	"github.com/ykwizera/studysync/internal/service"
	"github.com/ykwizera/studysync/pkg/database"
	"github.com/ykwizera/studysync/pkg/jwt"
	pkglog "github.com/ykwizera/studysync/pkg/log"
	"github.com/ykwizera/studysync/pkg/middleware"
	"github.com/ykwizera/studysync/pkg/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: "studysync",
	})
	logger := pkglog.L()

	// Connect to database using GORM
	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto-migrate
	if err := database.AutoMigrate(db,
		&domain.UserModel{},
		&domain.GroupModel{},
		&domain.GroupMemberModel{},
		&domain.MeetingModel{},
		&domain.MeetingAttendeeModel{},
		&domain.MaterialModel{},
		&domain.MessageModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Msg("database migration completed")

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	groupRepo := repository.NewGormGroupRepository(db)
	meetingRepo := repository.NewGormMeetingRepository(db)
	materialRepo := repository.NewGormMaterialRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)

	// Initialize Redis member cache. The service degrades to repository
	// lookups when Redis is disabled or unreachable.
	var memberCache cache.MemberCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisMemberCache(cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, member lookups fall back to database")
		} else {
			defer redisCache.Close()
			memberCache = redisCache
			logger.Info().Str("addr", cfg.Redis.Address).Msg("redis member cache connected")
		}
	}

	// Initialize file storage backend
	var store storage.Storage
	switch cfg.Storage.Backend {
	case "s3":
		store, err = storage.NewS3Storage(context.Background(), cfg.Storage.S3)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize s3 storage")
		}
	default:
		store, err = storage.NewLocalStorage(cfg.Storage.Local)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize local storage")
		}
	}

	// Initialize JWT manager
	tokens, err := jwt.NewManager(cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, cfg.JWT.Issuer)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize jwt manager")
	}

	// Initialize services
	membershipIndex := service.NewMembershipIndex(groupRepo, memberCache, cfg.Redis.MemberTTL)
	userService := service.NewUserService(userRepo, tokens)
	groupService := service.NewGroupService(groupRepo, membershipIndex)
	meetingService := service.NewMeetingService(meetingRepo, groupService)
	materialService := service.NewMaterialService(materialRepo, store, groupService)
	messageService := service.NewMessageService(messageRepo, groupService)

	// Initialize connection registry and chat service
	wsHub := hub.NewHub(cfg.WebSocket)
	chatService := service.NewChatService(wsHub, userRepo, messageRepo, membershipIndex, groupRepo)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(*logger))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register routes
	api := r.Group("/api/v1")
	handler.NewUserHandler(userService, authMiddleware).RegisterRoutes(api)
	handler.NewGroupHandler(groupService, authMiddleware).RegisterRoutes(api)
	handler.NewMeetingHandler(meetingService, authMiddleware).RegisterRoutes(api)
	handler.NewMaterialHandler(materialService, authMiddleware).RegisterRoutes(api)
	handler.NewMessageHandler(messageService, chatService, authMiddleware).RegisterRoutes(api)
	handler.NewWSHandler(wsHub, chatService, cfg.WebSocket).RegisterRoutes(r)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Str("driver", cfg.Database.Driver).Msg("studysync starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("studysync stopped")
}
