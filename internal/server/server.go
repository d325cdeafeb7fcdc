package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"ccrtsite/internal/config"
	"ccrtsite/internal/site"
)

const defaultShutdownTimeout = 5 * time.Second

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	logger     *slog.Logger
	engine     *gin.Engine
	httpServer *http.Server
}

// New は新しいServerインスタンスを作成する
// ginのモード（debug/release）は呼び出し側で設定しておく
func New(cfg *config.Config, store site.AssetReader, logger *slog.Logger) *Server {
	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	// "/api/health/" などはリダイレクトせずアセット解決（APIなら404）に回す
	engine.RedirectTrailingSlash = false

	s := &Server{
		config: cfg,
		logger: logger,
		engine: engine,
		httpServer: &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
	s.setupRoutes(&SiteHandler{router: site.NewRouter(store, cfg.Assets.Index)})
	return s
}

// setupRoutes はHTTPルートを設定する
// 固定のAPIルートが先に一致し、それ以外はすべてNoRouteでアセットに解決する
func (s *Server) setupRoutes(h *SiteHandler) {
	s.engine.Use(RequestID(), RequestLogger(s.logger), Recovery(s.logger))

	// ルート
	s.engine.GET("/", h.ServeIndex)
	s.engine.HEAD("/", h.ServeIndex)

	// APIエンドポイント
	api := s.engine.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.HEAD("/health", h.HealthCheck)
		api.GET("/status", h.GetStatus)
		api.HEAD("/status", h.GetStatus)
	}

	s.engine.NoRoute(h.ServeAsset)
	s.engine.NoMethod(h.MethodNotAllowed)
}

// Handler はHTTPハンドラーを返す（テスト用）
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start はサーバーを起動する
// ctx のキャンセルまたはSIGINT/SIGTERMでグレースフルシャットダウンする
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("HTTPサーバーを起動しています", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("サーバーの起動に失敗: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown()
	})

	return g.Wait()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	s.logger.Info("サーバーをシャットダウンしています...")

	timeout := s.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	s.logger.Info("サーバーが正常にシャットダウンされました")
	return nil
}
