package gateway

import (
	"context"
	"crypto/subtle"
	"errors"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookServer is the push-mode gateway: Telegram POSTs updates to us and
// we acknowledge each one as soon as it has been handled. The ack is
// always {"ok": true} so platform-side redelivery never hinges on our
// internal errors; only authentication changes the HTTP status.
type WebhookServer struct {
	processor *Processor
	secret    string
	addr      string
	engine    *gin.Engine
}

func NewWebhookServer(processor *Processor, secret, addr string) *WebhookServer {
	s := &WebhookServer{
		processor: processor,
		secret:    secret,
		addr:      addr,
	}
	s.engine = s.buildEngine()
	return s
}

func (s *WebhookServer) buildEngine() *gin.Engine {
	r := gin.New()
	r.Use(accessLog(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "service": "Accountability Coach"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/telegram/webhook", s.handleUpdate)

	return r
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *WebhookServer) Handler() http.Handler {
	return s.engine
}

func (s *WebhookServer) handleUpdate(c *gin.Context) {
	header := c.GetHeader(secretHeader)
	if subtle.ConstantTimeCompare([]byte(header), []byte(s.secret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "bad secret"})
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		// Malformed payloads are acked and dropped; aborting here would
		// only make Telegram resend the same garbage.
		log.WarnContext(c.Request.Context(), "discarding malformed update", log.Any("err", err))
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	s.processor.HandleUpdate(c.Request.Context(), update)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *WebhookServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	log.Info("webhook server listening", log.String("addr", s.addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("webhook server shutdown failed", log.Any("err", err))
		}
		return <-errCh
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.InfoContext(c.Request.Context(), "http request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(start)),
		)
	}
}
