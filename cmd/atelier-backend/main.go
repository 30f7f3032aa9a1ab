package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atelier-backend/internal/config"
	"atelier-backend/internal/infrastructure/email"
	"atelier-backend/internal/infrastructure/objstore"
	"atelier-backend/internal/infrastructure/repo"
	"atelier-backend/internal/logger"
	"atelier-backend/internal/server"
	"atelier-backend/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New("atelier-backend", cfg.Common.LogLevel)

	var repos struct {
		users         usecase.UserRepo
		verifications usecase.VerificationRepo
		categories    usecase.CategoryRepo
		stores        usecase.StoreRepo
		commissions   usecase.CommissionRepo
		orders        usecase.OrderRepo
		orderItems    usecase.OrderItemRepo
		payments      usecase.PaymentRepo
		chatRooms     usecase.ChatRoomRepo
		chats         usecase.ChatRepo
		posts         usecase.PostRepo
	}

	if cfg.Postgres.DSN != "" {
		pg, err := repo.NewPostgres(cfg.Postgres.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("pg connect failed")
		}
		defer pg.Close()
		repos.users = pg.Users
		repos.verifications = pg.Verifications
		repos.categories = pg.Categories
		repos.stores = pg.Stores
		repos.commissions = pg.Commissions
		repos.orders = pg.Orders
		repos.orderItems = pg.OrderItems
		repos.payments = pg.Payments
		repos.chatRooms = pg.ChatRooms
		repos.chats = pg.Chats
		repos.posts = pg.Posts
		log.Info().Msg("storage: postgres")
	} else {
		mem := repo.NewMemory()
		repos.users = mem.Users
		repos.verifications = mem.Verifications
		repos.categories = mem.Categories
		repos.stores = mem.Stores
		repos.commissions = mem.Commissions
		repos.orders = mem.Orders
		repos.orderItems = mem.OrderItems
		repos.payments = mem.Payments
		repos.chatRooms = mem.ChatRooms
		repos.chats = mem.Chats
		repos.posts = mem.Posts
		log.Warn().Msg("storage: in-memory (no POSTGRES_DSN)")
	}

	tokens := &usecase.TokenService{Secret: cfg.Auth.JWTSecret}
	mail := &email.Client{
		Domain:    cfg.Mail.Domain,
		APIKey:    cfg.Mail.APIKey,
		FromEmail: cfg.Mail.FromEmail,
		Log:       log,
	}
	uploads := objstore.NewLocal(cfg.Uploads.Dir, cfg.HTTP.PublicBaseURL)

	users := &usecase.UserService{
		Users:         repos.users,
		Verifications: repos.verifications,
		Email:         mail,
		Token:         tokens,
		Log:           log,
	}
	stores := &usecase.StoreService{
		Stores:      repos.stores,
		Categories:  repos.categories,
		Commissions: repos.commissions,
		Log:         log,
	}
	orders := &usecase.OrderService{
		Orders:      repos.orders,
		OrderItems:  repos.orderItems,
		Stores:      repos.stores,
		Commissions: repos.commissions,
		Log:         log,
	}
	payments := &usecase.PaymentService{
		Payments: repos.payments,
		Orders:   repos.orders,
		Log:      log,
	}
	chats := &usecase.ChatService{
		ChatRooms: repos.chatRooms,
		Chats:     repos.chats,
		Users:     repos.users,
		Log:       log,
	}
	posts := &usecase.PostService{
		Posts:       repos.posts,
		Commissions: repos.commissions,
		Stores:      repos.stores,
		Log:         log,
	}

	srv := server.New(cfg, log, server.Services{
		Tokens:   tokens,
		Users:    users,
		Stores:   stores,
		Orders:   orders,
		Payments: payments,
		Chats:    chats,
		Posts:    posts,
		Uploads:  uploads,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", httpSrv.Addr).Msg("http started")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutdown...")
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = httpSrv.Shutdown(shCtx)
}
