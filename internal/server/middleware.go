package server

import (
	"bytes"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// noCache closes every connection after one response and forbids caching.
func noCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Connection", "close")
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		c.Next()
	}
}

// requestID echoes an incoming X-Request-ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("[Server] Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString(requestIDHeader),
		)
	}
}

// bufferedWriter holds the response body until the handler returns.
type bufferedWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

// contentLength buffers every response so it is sent with an exact
// Content-Length instead of chunked encoding. Hijacked connections pass through.
func contentLength() gin.HandlerFunc {
	return func(c *gin.Context) {
		w := &bufferedWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()
		c.Writer = w.ResponseWriter

		if w.body.Len() == 0 {
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(w.body.Len()))
		w.Header().Del("Transfer-Encoding")
		if _, err := w.ResponseWriter.Write(w.body.Bytes()); err != nil {
			c.Error(err)
		}
	}
}
