package server

import (
	"log/slog"
	"net/http"
	"time"

	"ctchen222/tictactoe/internal/relay"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

// Server exposes the chat relay over HTTP.
type Server struct {
	hub      *relay.Hub
	upgrader websocket.Upgrader
	engine   *gin.Engine
}

// NewServer routes /ws to hub, answers /healthz and serves staticDir for every
// other path.
func NewServer(hub *relay.Hub, staticDir string) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		engine: gin.New(),
	}

	s.engine.Use(gin.Recovery(), requestLogger())
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/ws", s.handleWebSocket)
	s.engine.NoRoute(gin.WrapH(http.FileServer(http.Dir(staticDir))))
	return s
}

// Engine returns the HTTP handler.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	SuccessResponse(c, gin.H{"status": "ok", "clients": s.hub.Clients()})
}

// handleWebSocket upgrades the connection and hands it to the hub until the
// client goes away.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
		attribute.String("http.method", c.Request.Method),
	))

	if !websocket.IsWebSocketUpgrade(c.Request) {
		span.SetStatus(codes.Error, "Not a websocket upgrade")
		span.End()
		ErrorResponse(c, http.StatusBadRequest, "expected a websocket upgrade")
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.WarnContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		span.End()
		return
	}
	span.End()

	s.hub.Serve(ctx, conn)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.DebugContext(c.Request.Context(), "HTTP request",
			"http.method", c.Request.Method,
			"http.path", c.Request.URL.Path,
			"http.status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
