package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/changhyeonkim/gym-member-api/internal/bootstrap"
	"github.com/changhyeonkim/gym-member-api/internal/config"
	"github.com/changhyeonkim/gym-member-api/internal/router"
	"github.com/changhyeonkim/gym-member-api/internal/shared/logger"
	"github.com/changhyeonkim/gym-member-api/internal/shared/metrics"
	"github.com/changhyeonkim/gym-member-api/internal/shared/validator"
)

func main() {
	env := parseFlags()

	logger.Setup(env)
	slog.Info("서버 초기화 시작", "env", env)

	if err := run(env); err != nil {
		slog.Error("서버 초기화 실패", "error", err)
		os.Exit(1)
	}

	slog.Info("서버 종료 완료", "env", env)
}

func parseFlags() string {
	env := flag.String("env", "local", "Environment (local|dev|production)")
	flag.Parse()
	return *env
}

func run(env string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	slog.Info("환경 변수 로드 성공", "store_driver", cfg.Store.Driver, "fallback", cfg.Store.Fallback)

	store, err := bootstrap.OpenMemberStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			slog.Error("회원 저장소 종료 실패", "error", err)
		}
	}()

	m, err := metrics.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("메트릭 초기화 실패: %w", err)
	}
	defer func() {
		if err := m.Shutdown(context.Background()); err != nil {
			slog.Error("메트릭 종료 실패", "error", err)
		}
	}()

	srv, err := setupServer(cfg, store, m)
	if err != nil {
		return err
	}

	return serve(ctx, srv, cfg.Server.GracefulTimeout)
}

func setupServer(cfg *config.Config, store *bootstrap.MemberStore, m *metrics.Metrics) (*bootstrap.Server, error) {
	boot := bootstrap.NewBootstrap(cfg, m)
	ginEngine := boot.SetupEngine()

	if err := validator.RegisterAll(); err != nil {
		return nil, fmt.Errorf("공통 Validator 등록 실패: %w", err)
	}

	router.Setup(ginEngine, cfg, store, m)

	slog.Info("서버 설정 완료",
		"env", cfg.App.Env,
		"backend", store.Backend(),
		"degraded", store.Degraded,
	)

	return bootstrap.New(cfg, ginEngine), nil
}

// serve blocks until the server fails or ctx is cancelled by a shutdown signal.
func serve(ctx context.Context, srv *bootstrap.Server, gracefulTimeout time.Duration) error {
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("서버 오류: %w", err)
	case <-ctx.Done():
	}

	slog.Info("종료 신호 수신됨, 진행 중인 요청을 정리합니다", "timeout", gracefulTimeout)

	// ctx is already cancelled; the drain deadline needs a fresh parent
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("서버 강제 종료: %w", err)
	}
	return nil
}
