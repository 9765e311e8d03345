package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/rasoisetu/backend/controllers"
	"github.com/rasoisetu/backend/middleware"
	"github.com/rasoisetu/backend/routes"
	"github.com/rasoisetu/backend/store"
	"github.com/rasoisetu/backend/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, proceeding with environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "rasoisetu"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	db, err := store.Connect(ctx, uri, dbName)
	if err != nil {
		slog.Error("mongodb connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			slog.Error("mongodb disconnect failed", "error", err)
		}
	}()

	// Initialize EmailService
	emailService := utils.NewEmailService()

	// Initialize controllers
	vendorController := controllers.NewVendorController(db)
	sellerController := controllers.NewSellerController(db, emailService)
	inventoryController := controllers.NewInventoryController(db)
	orderController := controllers.NewOrderController(db)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, vendorController, sellerController, inventoryController, orderController)

	// CORS wraps the whole router so preflight requests are answered too.
	handler := middleware.CORS(middleware.RequestLogger(router))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	srv := &http.Server{Addr: ":" + port, Handler: handler}

	go func() {
		slog.Info("server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}
