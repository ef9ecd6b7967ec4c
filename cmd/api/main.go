package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "wm-backend/api/swagger" // swagger docs
	"wm-backend/internal/audit"
	"wm-backend/internal/config"
	"wm-backend/internal/database"
	"wm-backend/internal/handler"
	"wm-backend/internal/locale"
	"wm-backend/internal/logger"
	"wm-backend/internal/middleware"
	"wm-backend/internal/model"
	"wm-backend/internal/permission"
	"wm-backend/internal/repository"
	"wm-backend/internal/service"
	"wm-backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Work Tracking API
// @version         1.0
// @description     Workflow tracking backend with field-level permissions and an audit trail.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	base, err := logger.New(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = base.Sync() }()
	log := base.Sugar()

	db, err := database.NewConnection(cfg.DSN(), log)
	if err != nil {
		log.Fatalw("database connection failed", "error", err)
	}
	defer func() { _ = database.Close(db) }()
	log.Infow("connected to PostgreSQL", "host", cfg.DBHost, "database", cfg.DBName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(log.Named("ws"))
	go wsHub.Run(ctx)

	tr := locale.New(cfg.Locale)

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	workRepo := repository.NewWorkRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	categoryRepo := repository.NewLookupRepository[model.Category](db)
	typeRepo := repository.NewLookupRepository[model.WorkType](db)
	channelRepo := repository.NewLookupRepository[model.SalesChannel](db)

	resolver := permission.NewResolver(roleRepo)
	guard := permission.NewGuard(resolver, tr)
	recorder := audit.NewRecorder(movementRepo, tr, log.Named("audit"), audit.WithPublisher(wsHub))

	userService := service.NewUserService(service.UserDeps{
		Users:       userRepo,
		Assignments: assignmentRepo,
		Resolver:    resolver,
		Translator:  tr,
		Logger:      log.Named("users"),
		JWTSecret:   []byte(cfg.JWTSecret),
		JWTTTL:      cfg.JWTTTL,
	})
	workService := service.NewWorkService(service.WorkDeps{
		Works:      workRepo,
		Users:      userRepo,
		Categories: categoryRepo,
		Types:      typeRepo,
		Channels:   channelRepo,
		Guard:      guard,
		Recorder:   recorder,
		Translator: tr,
		Validate:   validator.New(),
		Logger:     log.Named("works"),
	})
	roleService := service.NewRoleService(roleRepo, txManager, tr)
	assignmentService := service.NewAssignmentService(assignmentRepo, userRepo, roleRepo, tr)
	movementService := service.NewMovementService(movementRepo, tr)

	if err := userService.EnsureSuperuser(ctx, cfg.SeedAdminUsername, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		log.Fatalw("bootstrap superuser failed", "error", err)
	}

	// Initialize Handlers
	requireAuth := middleware.RequireAuth(userService)
	requireSuperuser := middleware.RequireSuperuser()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware(base))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, userService)
	})

	// API Routing
	api := router.Group("")
	handler.NewUserHandler(userService, tr, handler.CookieSettings{TTL: cfg.JWTTTL, Production: cfg.IsProduction()}).
		RegisterRoutes(api, requireAuth, requireSuperuser)
	handler.NewWorkHandler(workService).RegisterRoutes(api, requireAuth)
	handler.NewRoleHandler(roleService).RegisterRoutes(api, requireAuth, requireSuperuser)
	handler.NewAssignmentHandler(assignmentService).RegisterRoutes(api, requireAuth, requireSuperuser)
	handler.NewMovementHandler(movementService).RegisterRoutes(api, requireAuth, requireSuperuser)
	handler.NewPermissionHandler(resolver).RegisterRoutes(api, requireAuth)
	handler.NewLookupHandler("/api/categories", service.NewLookupService(categoryRepo, tr)).
		RegisterRoutes(api, requireAuth, requireSuperuser)
	handler.NewLookupHandler("/api/work-types", service.NewLookupService(typeRepo, tr)).
		RegisterRoutes(api, requireAuth, requireSuperuser)
	handler.NewLookupHandler("/api/sales-channels", service.NewLookupService(channelRepo, tr)).
		RegisterRoutes(api, requireAuth, requireSuperuser)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("server listening", "port", cfg.Port, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
}
