package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/meetspace/signaling-server/internal/auth"
	"github.com/meetspace/signaling-server/internal/config"
	"github.com/meetspace/signaling-server/internal/core"
)

// NewServer builds the HTTP server: diagnostic endpoints, guest
// tokens, and the WebSocket signaling endpoint.
func NewServer(hub *core.Hub, tokens *auth.Service, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger), CORSMiddleware())

	api := NewAPIHandlers(hub, tokens, logger)
	router.GET("/healthcheck", api.Health)
	router.GET("/rooms", api.Rooms)
	router.POST("/api/guest", api.Guest)

	// The WebSocket upgrade needs to hijack the connection, which gin's
	// response writer forbids once headers are written, so /ws is served on
	// a plain mux and only the REST routes go through gin.
	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(hub, tokens, cfg, logger))
	mux.Handle("/", router)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
