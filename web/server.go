package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BHUPESH003/research-paper-tracker/log"
)

// Server mounts the kit http handlers on a gin router. URI params are
// copied into the request context under "params" where the decoders
// expect them.
type Server struct {
	router *gin.Engine
}

func NewServer(logger log.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// Request log
	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithField("status", c.Writer.Status()).
			WithField("duration", time.Since(start).String()).
			Printf("%s %s", c.Request.Method, c.Request.URL.Path)
	})

	// CORS
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Accept-Language, Authorization, Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
		}
		c.Next()
	})

	// Unknown route
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "NOT_FOUND",
			"data":    nil,
			"message": "page not found",
		})
	})

	// Ping
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"code":    "OK",
			"data":    "pong",
			"message": "",
		})
	})

	return &Server{router: router}
}

// RegisterHandler makes Server usable by every feature's http package.
func (s *Server) RegisterHandler(path, method string, handler http.Handler) {
	s.router.Handle(method, path, func(c *gin.Context) {
		params := make(map[string]string)
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}

		ctx := context.WithValue(c.Request.Context(), "params", params)
		handler.ServeHTTP(c.Writer, c.Request.WithContext(ctx))
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server on addr and blocks.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
