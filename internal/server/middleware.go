package server

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ccrtsite/internal/site"
)

const (
	// RequestIDHeader はリクエストIDを運ぶヘッダー
	RequestIDHeader = "X-Request-Id"

	requestIDKey = "request_id"
)

// RequestID はリクエストごとにIDを割り当てる
// クライアントが正しいUUIDを送ってきた場合はそれを使う
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger はslogでリクエストを1行ずつ記録する
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.String("duration", time.Since(start).String()),
			slog.String("remote", c.ClientIP()),
			slog.String(requestIDKey, c.GetString(requestIDKey)),
		}

		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("error", c.Errors.String()))
			logger.Error("request", attrs...)
			return
		}
		logger.Info("request", attrs...)
	}
}

// Recovery はpanicを回復し、JSONの500を返す
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	// gin自身のスタック出力は使わずslogに記録する
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			slog.Any("panic", recovered),
			slog.String("url", c.Request.URL.String()),
			slog.String(requestIDKey, c.GetString(requestIDKey)),
		)
		_ = c.Error(fmt.Errorf("panic: %v", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, site.ErrorBody{Error: msgInternalError})
	})
}
