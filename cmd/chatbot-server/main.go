package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"kushi-chatbot/internal/chat"
	"kushi-chatbot/internal/common/config"
	"kushi-chatbot/internal/common/database"
	apperrors "kushi-chatbot/internal/common/errors"
	"kushi-chatbot/internal/common/logger"
	"kushi-chatbot/internal/common/observability"
	"kushi-chatbot/internal/ratelimit"
	"kushi-chatbot/internal/responder"
	"kushi-chatbot/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// connectRedis dials Redis with retries. A client whose ping fails is closed
// before the next attempt.
func connectRedis(cfg config.RedisConfig, attempts int, delay time.Duration, log *zap.Logger) (*database.RedisClient, error) {
	var client *database.RedisClient
	err := retryWithBackoff(func() error {
		rc, err := database.NewRedis(cfg)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return err
		}
		client = rc
		return nil
	}, attempts, delay, log, "Redis connection")
	if err != nil {
		return nil, apperrors.NewRedisConnectionFailedError(err)
	}
	return client, nil
}

func standardErrorFields(stdErr *apperrors.StandardError) []zap.Field {
	return []zap.Field{
		zap.String("errorCode", string(stdErr.Code)),
		zap.String("errorCategory", apperrors.GetErrorCategory(stdErr.Code)),
		zap.String("details", stdErr.Details),
		zap.Bool("retryable", stdErr.Retryable),
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", standardErrorFields(apperrors.NewConfigInvalidError(err))...)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting Kushi chatbot...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	// --- Redis (optional) with retry ---
	var redisClient *database.RedisClient
	var ready server.Pinger
	if cfg.Database.Redis.Address != "" {
		redisClient, err = connectRedis(cfg.Database.Redis, 5, time.Second, zapLog)
		if err != nil {
			zapLog.Fatal("redis failed after retries", standardErrorFields(apperrors.Normalize(err))...)
		}
		defer redisClient.Close()
		ready = redisClient
		zapLog.Info("Redis connected successfully", zap.String("address", cfg.Database.Redis.Address))
	}

	limiter := newLimiter(cfg.RateLimit, redisClient)
	zapLog.Info("rate limiter configured",
		zap.Bool("enabled", cfg.RateLimit.Enabled),
		zap.String("backend", fmt.Sprintf("%T", limiter)),
	)

	handler := chat.NewHandler(chat.LoadConfig(cfg), responder.New(), limiter, obs, &chatLoggerAdapter{log})
	srv := server.New(cfg, handler, ready, log)

	go func() {
		if err := srv.Start(); err != nil {
			zapLog.Fatal("http server stopped", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down http server", zap.Error(err))
	}

	zapLog.Info("Kushi chatbot stopped gracefully")
}

func newLimiter(cfg config.RateLimitConfig, rc *database.RedisClient) ratelimit.Limiter {
	if rc == nil {
		return ratelimit.New(cfg, nil)
	}
	return ratelimit.New(cfg, rc.Client)
}

// chatLoggerAdapter narrows logger.Logger to the chat package's interface.
type chatLoggerAdapter struct {
	logger.Logger
}

func (a *chatLoggerAdapter) With(fields map[string]interface{}) chat.Logger {
	return &chatLoggerAdapter{a.Logger.With(fields)}
}
