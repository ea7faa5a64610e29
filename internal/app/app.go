// Package app сборка и запуск веб-интерфейса SmartLink.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/zaz600/go-smartlink-web/internal/app/config"
	"github.com/zaz600/go-smartlink-web/internal/controller/httpcontroller"
	"github.com/zaz600/go-smartlink-web/internal/infrastructure/backend"
	"github.com/zaz600/go-smartlink-web/internal/pkg/httpserver"
	"github.com/zaz600/go-smartlink-web/internal/service/shortener"
	"github.com/zaz600/go-smartlink-web/internal/view"
)

var (
	BuildVersion = "n/a"
	BuildTime    = "n/a"
	BuildCommit  = "n/a"
)

const shutdownTimeout = 5 * time.Second

// Run инициализация и запуск приложения
func Run(args []string) (err error) {
	printBuildInfo()

	ctxBg := context.Background()
	ctx, cancel := signal.NotifyContext(ctxBg, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.GetConfig(args)
	if err != nil {
		return err
	}
	if err := setupLogger(cfg.LogLevel); err != nil {
		return err
	}
	log.Info().Msgf("app cfg: %+v", cfg)

	server, err := newServer(ctx, cfg)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutdown...")
		ctx, cancel := context.WithTimeout(ctxBg, shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Err(err).Msg("error during shutdown server")
		}
	}()

	if cfg.EnableHTTPS {
		log.Info().Str("addr", cfg.ServerAddress).Msg("listen https")
		err = httpserver.ListenTLS(server, cfg.ServerAddress)
	} else {
		log.Info().Str("addr", cfg.ServerAddress).Msg("listen http")
		err = server.ListenAndServe()
	}
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newServer собирает зависимости и http.Server. Фоновые задачи живут, пока не отменен ctx.
func newServer(ctx context.Context, cfg *config.Config) (*http.Server, error) {
	client := backend.NewClient(cfg.APIBaseURL, cfg.Timeout())
	service, err := shortener.NewService(client.BaseURL(),
		shortener.WithBackend(client),
		shortener.WithDocsBaseURL(cfg.DocsBaseURL),
	)
	if err != nil {
		return nil, err
	}

	formatter, err := view.NewFormatter(cfg.DisplayLocale, cfg.DisplayTimezone)
	if err != nil {
		return nil, err
	}
	renderer, err := view.NewRenderer(formatter)
	if err != nil {
		return nil, err
	}

	sessions := httpcontroller.NewSessionStore(service, cfg.TTL())
	sessions.StartSweeper(ctx, sweepInterval(cfg.TTL()))

	controller := httpcontroller.New(service, renderer,
		httpcontroller.WithSessions(sessions),
		httpcontroller.WithSessionSecret(cfg.SessionSecret, cfg.TTL()),
		httpcontroller.WithRequestTimeout(cfg.Timeout()),
	)
	return &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           controller,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// sweepInterval как часто чистить сессии: не реже раза в минуту
func sweepInterval(ttl time.Duration) time.Duration {
	interval := ttl / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

func setupLogger(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

func printBuildInfo() {
	fmt.Println("Build version:", BuildVersion)
	fmt.Println("Build date:", BuildTime)
	fmt.Println("Build commit:", BuildCommit)
}
