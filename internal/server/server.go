package server

import (
	"net/http"

	"atelier-backend/internal/config"
	"atelier-backend/internal/domain"
	"atelier-backend/internal/infrastructure/objstore"
	"atelier-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	cfg    config.Config
	log    zerolog.Logger
	engine *gin.Engine

	tokens   *usecase.TokenService
	users    *usecase.UserService
	stores   *usecase.StoreService
	orders   *usecase.OrderService
	payments *usecase.PaymentService
	chats    *usecase.ChatService
	posts    *usecase.PostService
	uploads  *objstore.Local
}

type Services struct {
	Tokens   *usecase.TokenService
	Users    *usecase.UserService
	Stores   *usecase.StoreService
	Orders   *usecase.OrderService
	Payments *usecase.PaymentService
	Chats    *usecase.ChatService
	Posts    *usecase.PostService
	Uploads  *objstore.Local
}

func New(cfg config.Config, log zerolog.Logger, svc Services) *Server {
	if cfg.Common.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{
		cfg:      cfg,
		log:      log,
		engine:   gin.New(),
		tokens:   svc.Tokens,
		users:    svc.Users,
		stores:   svc.Stores,
		orders:   svc.Orders,
		payments: svc.Payments,
		chats:    svc.Chats,
		posts:    svc.Posts,
		uploads:  svc.Uploads,
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() {
	s.engine.Use(gin.Recovery(), metricsMiddleware("atelier-backend"), s.cors())

	s.engine.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.engine.Static("/uploads", s.cfg.Uploads.Dir)

	api := s.engine.Group("/api")

	// public
	api.POST("/users", s.handleCreateAccount)
	api.POST("/login", s.handleLogin)
	api.POST("/verify-email", s.handleVerifyEmail)
	api.GET("/categories", s.handleAllCategories)
	api.GET("/categories/:slug", s.handleCategoryBySlug)
	api.GET("/stores", s.handleAllStores)
	api.GET("/stores/search", s.handleSearchStores)
	api.GET("/stores/:id", s.handleGetStore)
	api.GET("/posts/:id", s.handleGetPost)

	// any authenticated user
	api.GET("/me", s.guard(RoleAny), s.handleMe)
	api.PUT("/me", s.guard(RoleAny), s.handleEditProfile)
	api.GET("/orders", s.guard(RoleAny), s.handleGetOrders)
	api.GET("/orders/:id", s.guard(RoleAny), s.handleGetOrder)
	api.PATCH("/orders/:id", s.guard(RoleAny), s.handleEditOrderStatus)
	api.GET("/payments", s.guard(RoleAny), s.handleGetPayments)
	api.POST("/chat-rooms", s.guard(RoleAny), s.handleCreateChatRoom)
	api.GET("/chat-rooms", s.guard(RoleAny), s.handleGetChatRooms)
	api.GET("/chat-rooms/:id", s.guard(RoleAny), s.handleGetChatRoom)
	api.GET("/chat-rooms/:id/chats", s.guard(RoleAny), s.handleLoadChats)
	api.POST("/chats", s.guard(RoleAny), s.handleCreateChat)

	// creators
	api.POST("/stores", s.guard(domain.RoleCreator), s.handleCreateStore)
	api.GET("/me/stores", s.guard(domain.RoleCreator), s.handleMyStores)
	api.PUT("/stores/:id", s.guard(domain.RoleCreator), s.handleEditStore)
	api.DELETE("/stores/:id", s.guard(domain.RoleCreator), s.handleDeleteStore)
	api.POST("/commissions", s.guard(domain.RoleCreator), s.handleCreateCommission)
	api.PUT("/commissions/:id", s.guard(domain.RoleCreator), s.handleEditCommission)
	api.DELETE("/commissions/:id", s.guard(domain.RoleCreator), s.handleDeleteCommission)
	api.POST("/posts", s.guard(domain.RoleCreator), s.handleCreatePost)
	api.PUT("/posts/:id", s.guard(domain.RoleCreator), s.handleEditPost)
	api.DELETE("/posts/:id", s.guard(domain.RoleCreator), s.handleDeletePost)
	api.POST("/upload", s.guard(domain.RoleCreator), s.handleUploadFile)
	api.POST("/uploads", s.guard(domain.RoleCreator), s.handleUploadImages)
	api.DELETE("/uploads", s.guard(domain.RoleCreator), s.handleDeleteUploads)

	// clients
	api.POST("/orders", s.guard(domain.RoleClient), s.handleCreateOrder)
	api.POST("/payments", s.guard(domain.RoleClient), s.handleCreatePayment)
}

func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// ok wraps a payload into the uniform envelope; extra keys merge in flat.
func ok(c *gin.Context, extra gin.H) {
	out := gin.H{"ok": true}
	for k, v := range extra {
		out[k] = v
	}
	c.JSON(http.StatusOK, out)
}

// fail translates the service error kinds onto HTTP statuses.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch err.(type) {
	case usecase.ErrNotFound:
		status = http.StatusNotFound
	case usecase.ErrForbidden:
		status = http.StatusForbidden
	case usecase.ErrBadRequest:
		status = http.StatusBadRequest
	case usecase.ErrInternal:
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
