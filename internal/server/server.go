package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "quill/docs"
	"quill/internal/ai"
	"quill/internal/config"
	"quill/internal/handler"
	adminHandler "quill/internal/handler/admin"
	assistHandler "quill/internal/handler/assist"
	authHandler "quill/internal/handler/auth"
	postHandler "quill/internal/handler/post"
	"quill/internal/model/auth"
	"quill/internal/pkg/cache"
	"quill/internal/pkg/contenttools"
	httputil "quill/internal/pkg/http"
	"quill/internal/pkg/jwt"
	"quill/internal/pkg/metrics"
	"quill/internal/pkg/mongodb"
	authRepo "quill/internal/repository/auth"
	postRepo "quill/internal/repository/post"
	"quill/internal/server/middleware"
	"quill/internal/service"
)

const defaultJWTSecret = "default-secret-key-change-in-production"

// Server HTTP 服务器
type Server struct {
	cfg     *config.Config
	engine  *gin.Engine
	mongo   *mongodb.Client
	redis   *cache.RedisCache
	ai      *ai.Client
	metrics *metrics.Metrics
}

// New 创建服务器实例
// MongoDB / Redis 均为可选：没有 MongoDB 时只提供 AI 接口，没有 Redis 时文章不走缓存
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	aiClient, err := ai.NewClient(ctx, &cfg.AI)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("provider", aiClient.Provider()).
		Str("model", aiClient.Model()).
		Bool("enabled", aiClient.Enabled()).
		Msg("AI client initialized")

	srv := &Server{
		cfg:    cfg,
		engine: gin.New(),
		ai:     aiClient,
	}
	if cfg.Metrics.Enabled {
		srv.metrics = metrics.New(nil)
	}

	// 初始化 MongoDB (可选)
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(ctx, &cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, continuing without it")
		} else {
			srv.mongo = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			if err := mongodb.EnsureIndexes(ctx, client.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
		}
	}

	// 初始化 Redis (可选)
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			srv.redis = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	srv.setupRoutes()
	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger(s.metrics))
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.CORS(s.cfg.Server.CORSOrigins))

	// 健康检查
	deps := map[string]handler.Pinger{}
	if s.mongo != nil {
		deps["mongo"] = s.mongo
	}
	if s.redis != nil {
		deps["redis"] = s.redis
	}
	healthHandler := handler.NewHealthHandler(deps)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	if s.metrics != nil {
		s.engine.GET(s.cfg.Metrics.Path, gin.WrapH(s.metrics.Handler()))
	}

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	s.setupAssistRoutes()

	if s.mongo == nil {
		log.Warn().Msg("MongoDB not configured, post/auth/admin endpoints disabled")
		return
	}
	s.setupContentRoutes()
}

// setupAssistRoutes 标签与摘要接口，/api/gemini 与 /api/v1/ai 等价
func (s *Server) setupAssistRoutes() {
	var generator contenttools.LLMProvider
	if s.ai.Enabled() {
		generator = s.ai
	}
	assistSvc := service.NewAssistService(generator, s.metrics).WithRemoteLimits(service.RemoteLimits{
		MaxConcurrent: s.cfg.AI.MaxConcurrent,
		RatePerSecond: s.cfg.AI.RateLimit,
		Burst:         s.cfg.AI.RateBurst,
	})
	h := assistHandler.NewHandler(assistSvc, s.ai)

	notAllowed := httputil.MethodNotAllowed(http.MethodPost)
	for _, prefix := range []string{"/api/gemini", "/api/v1/ai"} {
		g := s.engine.Group(prefix)
		g.POST("/tags", h.SuggestTags)
		g.POST("/summarize", h.Summarize)
		for _, m := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
			g.Handle(m, "/tags", notAllowed)
			g.Handle(m, "/summarize", notAllowed)
		}
	}
	s.engine.GET("/api/ai/status", h.Status)
}

// setupContentRoutes 文章、认证与管理后台接口，依赖 MongoDB
func (s *Server) setupContentRoutes() {
	db := s.mongo.Database()
	users := authRepo.NewUserRepo(db)
	refreshTokens := authRepo.NewRefreshTokenRepo(db)
	posts := postRepo.NewPostRepo(db)

	jwtSecret := s.cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = defaultJWTSecret
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
	}
	accessTokenExpiry := s.cfg.Auth.AccessTokenExpiry
	if accessTokenExpiry == 0 {
		accessTokenExpiry = 24 * time.Hour
	}
	refreshTokenExpiry := s.cfg.Auth.RefreshTokenExpiry
	if refreshTokenExpiry == 0 {
		refreshTokenExpiry = 7 * 24 * time.Hour
	}

	// nil *RedisCache 不能直接赋给接口
	var postCache service.Cache
	if s.redis != nil {
		postCache = s.redis
	}

	authSvc := service.NewAuthService(users, refreshTokens, jwt.NewJWT(jwtSecret, accessTokenExpiry), refreshTokenExpiry)
	postSvc := service.NewPostService(posts, postCache, s.cfg.Redis.PostTTL)
	userSvc := service.NewUserService(users, refreshTokens, posts)

	requireAuth := middleware.Auth(authSvc)

	// 文章：读公开，写需要登录
	postHdl := postHandler.NewHandler(postSvc)
	p := s.engine.Group("/api/posts")
	{
		p.GET("", postHdl.List)
		p.GET("/:id", postHdl.Get)
		p.POST("", requireAuth, postHdl.Create)
		p.PUT("/:id", requireAuth, postHdl.Update)
		p.DELETE("/:id", requireAuth, postHdl.Delete)
	}

	// 认证
	authHdl := authHandler.NewHandler(authSvc)
	a := s.engine.Group("/api/v1/auth")
	{
		a.POST("/register", authHdl.Register)
		a.POST("/login", authHdl.Login)
		a.POST("/refresh", authHdl.Refresh)
		a.POST("/logout", requireAuth, authHdl.Logout)
		a.GET("/me", requireAuth, authHdl.GetMe)
	}

	// 管理后台
	adminHdl := adminHandler.NewHandler(userSvc, postSvc)
	admin := s.engine.Group("/api/admin", requireAuth, middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/users", adminHdl.ListUsers)
		admin.PATCH("/users/:id", adminHdl.UpdateUser)
		admin.DELETE("/users/:id", adminHdl.DeleteUser)
		admin.GET("/posts", adminHdl.ListPosts)
		admin.DELETE("/posts/:id", adminHdl.DeletePost)
		admin.GET("/stats", adminHdl.Stats)
	}
}

// Run 启动服务器，ctx 取消后优雅关闭
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)

		if s.mongo != nil {
			if cerr := s.mongo.Close(shutdownCtx); cerr != nil {
				log.Error().Err(cerr).Msg("failed to close MongoDB connection")
			}
		}
		if s.redis != nil {
			if cerr := s.redis.Close(); cerr != nil {
				log.Error().Err(cerr).Msg("failed to close Redis connection")
			}
		}
		return err
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
