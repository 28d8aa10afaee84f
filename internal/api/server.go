package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nhle/tasktracker/internal/model"
	"github.com/nhle/tasktracker/internal/store"
)

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 10 * time.Second

// Server is the Task API HTTP server.
type Server struct {
	store  store.Store
	router *gin.Engine
}

// NewServer builds the gin engine and registers every route.
func NewServer(s store.Store, cfg model.ServerConfig) *Server {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), RequestID())

	// Browser clients call the API cross-origin.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.AllowOrigins
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", RequestIDHeader}
	corsCfg.ExposeHeaders = []string{"Location", RequestIDHeader}
	router.Use(cors.New(corsCfg))

	srv := &Server{
		store:  s,
		router: router,
	}

	router.GET("/api/health", srv.handleHealth)

	tasks := router.Group("/api/tasks")
	{
		tasks.GET("", srv.handleListTasks)
		tasks.POST("", srv.handleCreateTask)
		tasks.GET("/:id", srv.handleGetTask)
		tasks.PUT("/:id", srv.handleUpdateTask)
	}

	return srv
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then drains in-flight
// requests before returning.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Task API listening on %s", addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down Task API...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
