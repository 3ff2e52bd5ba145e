package worker

import (
	"context"
	"errors"
	"time"

	"github.com/linkmart/internal/config"
	"github.com/linkmart/internal/logger"
	"github.com/linkmart/internal/queue"

	"github.com/hibiken/asynq"
)

const bannerExpireInterval = time.Minute

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.BannerService != nil {
		go s.runBannerExpireLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runBannerExpireLoop 周期性下线到期的商品推广横幅
func (s *Service) runBannerExpireLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.BannerService == nil {
		return
	}
	runOnce := func() {
		count, err := s.consumer.BannerService.DeactivateExpiredProductBanners(time.Now())
		if err != nil {
			logger.Warnw("worker_banner_expire_failed", "error", err)
			return
		}
		if count > 0 {
			logger.Infow("worker_banner_expired", "count", count)
		}
	}
	runOnce()

	ticker := time.NewTicker(bannerExpireInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
