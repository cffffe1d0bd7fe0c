package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"engagementAPI/handlers"
	"engagementAPI/internal/audio"
	"engagementAPI/internal/config"
	"engagementAPI/middleware"
	"engagementAPI/services"
	"engagementAPI/web"
)

const assetsDir = "./assets"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the page and guestbook API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if !cfg.HasDatabase() {
		log.Warn("DATABASE_URL is not set; /api/messages will answer 500 until it is")
	}
	if !cfg.HasAdminPassword() {
		log.Warn("ADMIN_PASSWORD is not set; deleting wishes is disabled")
	}

	middleware.InitPrometheus()

	wishService := services.NewWishService(cfg.DatabaseURL, nil)
	defer func() {
		log.Info("Closing wish store...")
		wishService.Close()
	}()

	router, err := newRouter(cfg, wishService)
	if err != nil {
		return err
	}

	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length", "X-Request-ID"}),
		gorillaHandlers.IgnoreOptions(),
	)

	port := ":" + cfg.Port
	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(router),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server: ", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	log.Info("Got signal: ", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server shutdown error: %v", err)
	}

	log.Info("Server shutdown complete")
	return nil
}

// newRouter wires every route. It does not touch the datastore; the wish
// service connects on the first request that needs it.
func newRouter(cfg *config.Config, wishService *services.WishService) (*mux.Router, error) {
	event, err := cfg.EventTime()
	if err != nil {
		return nil, err
	}

	loop, err := audio.NewLoop(cfg.AudioStart, cfg.AudioEnd)
	if err != nil {
		return nil, err
	}

	pageHandler, err := handlers.NewPageHandler(event, cfg.AudioSrc, loop)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	messageHandler := handlers.NewMessageHandler(wishService, cfg.AdminPassword)
	healthHandler := handlers.NewHealthHandler(wishService, cfg.HasAdminPassword())

	r := mux.NewRouter()
	r.Use(middleware.RequestLogger)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(cfg.MetricsUser, cfg.MetricsPass)(promhttp.Handler()))
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	fs := http.FileServer(http.Dir(assetsDir))
	r.PathPrefix("/assets/").Handler(http.StripPrefix("/assets/", fs))
	log.Debugf("Serving static files from %s at /assets/", assetsDir)

	// API routes answer CORS themselves so that every response, OPTIONS
	// included, carries the headers.
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AllowAllOrigins)
	api.HandleFunc("/messages", messageHandler.HandleMessages)
	api.HandleFunc("/test", healthHandler.Test).Methods("GET", "OPTIONS")

	r.HandleFunc("/", pageHandler.ServePage).Methods("GET", "HEAD")

	return r, nil
}
