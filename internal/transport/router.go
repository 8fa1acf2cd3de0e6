// Package transport exposes the analysis API over gin.
package transport

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/metrics"
)

//go:embed index.html
var indexHTML []byte

// Server routes API requests to the analysis runner.
type Server struct {
	runner AnalysisRunner
	store  ArtifactLocator
	logger *zap.Logger
	engine *gin.Engine
}

// NewServer builds the router with logging, metrics and recovery middleware.
func NewServer(runner AnalysisRunner, store ArtifactLocator, logger *zap.Logger) *Server {
	s := &Server{
		runner: runner,
		store:  store,
		logger: logger,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(logMiddleware(logger), metricsMiddleware(), gin.Recovery())

	engine.GET("/", s.indexHandle())
	engine.GET("/healthz", s.healthHandle())
	engine.POST("/api/analyze", s.analyzeHandle())
	engine.POST("/api/cluster", s.clusterHandle())
	engine.POST("/api/peel", s.peelHandle())
	engine.GET("/download/:run_id/:filename", s.downloadHandle())

	s.engine = engine
	return s
}

// Handler returns the router for mounting into an http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func logMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Info("http request",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("duration", time.Since(start)))
	}
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		metrics.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), started)
	}
}

func respond(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"msg":  "ok",
		"data": data,
	})
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{
		"code": status,
		"msg":  err.Error(),
	})
}
