package api

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"taskhub-backend/pkg/config"
	"taskhub-backend/pkg/logger"
	"taskhub-backend/pkg/response"
)

type Handler struct {
	usecases Usecases
	config   *config.Config
	logger   zerolog.Logger
}

func NewHandler(uc Usecases, cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{
		usecases: uc,
		config:   cfg,
		logger:   log.With().Str("component", "http").Logger(),
	}
}

// Engine builds the gin engine with middleware and routes.
func (h *Handler) Engine() *gin.Engine {
	if h.config.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	response.RegisterJSONFieldNames()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), logger.Gin(h.logger), cors(h.config.AllowedOrigins))

	SetupRoutes(r, h.usecases, h.config.PageSize)
	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (h *Handler) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + h.config.Port,
		Handler: h.Engine(),
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	h.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), h.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// cors echoes the request origin when it is allowed. An empty list allows
// every origin.
func cors(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (len(allowed) == 0 || slices.Contains(allowed, origin)) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PATCH, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
