package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/todtix/gamewiki-services/configs"
	svcconfig "github.com/todtix/gamewiki-services/internal/catalogsvc/config"
	"github.com/todtix/gamewiki-services/internal/catalogsvc/broker"
	"github.com/todtix/gamewiki-services/internal/catalogsvc/db"
	handlers "github.com/todtix/gamewiki-services/internal/catalogsvc/handlers"
	"github.com/todtix/gamewiki-services/internal/catalogsvc/service"
	"github.com/todtix/gamewiki-services/internal/catalogsvc/storage"
	"github.com/todtix/gamewiki-services/internal/catalogsvc/store"
	nats "github.com/todtix/gamewiki-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "catalog"

var instanceId string

func init() {
	instanceId = "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	cfg := svcconfig.Load()

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	userStore := store.NewUserStore(dbpool)
	authService := service.NewAuthService(userStore, cfg.AdminEmail)

	gameStore := store.NewGameStore(dbpool)
	gameService := service.NewGameService(gameStore)

	suggestionStore := store.NewSuggestionStore(dbpool)
	suggestionService := service.NewSuggestionService(suggestionStore)

	// object storage bucket
	st, err := storage.Open(context.Background(), cfg.BucketURL, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("Failed to open bucket: %v", err)
	}
	defer st.Close()
	log.Printf("bucket opened successfully")

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// change event publisher
	b := broker.NewBroker(n.Conn)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(authService, gameService, suggestionService, st, b)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("CATALOG_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
