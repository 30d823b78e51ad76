package cron

import (
	"context"
	"time"

	"tourbook/config"
	"tourbook/services/booking"
	"tourbook/utils"

	"github.com/hibiken/asynq"
)

const TypeBookingSweep = "booking:sweep"

// InitSweepWorker runs the background worker that periodically marks
// overdue confirmed bookings as completed. The sweep itself is
// idempotent, so overlapping runs (or the inline sweep on listing) are
// harmless.
func InitSweepWorker(bookingSvc booking.BookingService) {
	logger := utils.GetLogger().Sugar()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisJobDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingSweep, handleSweepTask(bookingSvc))

	go func() {
		logger.Info("sweep worker: starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Errorf("sweep worker: attempt %d/%d failed: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					logger.Fatal("sweep worker: max retry attempts reached")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go enqueueSweeps(redisOpts)
}

func handleSweepTask(bookingSvc booking.BookingService) asynq.HandlerFunc {
	logger := utils.GetLogger().Sugar()
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := bookingSvc.CompleteOverdue(time.Now())
		if err != nil {
			logger.Errorf("sweep worker: sweep failed: %v", err)
			return err
		}
		if n > 0 {
			logger.Infof("sweep worker: marked %d overdue bookings completed", n)
		}
		return nil
	}
}

// enqueueSweeps enqueues a sweep task on a fixed interval.
func enqueueSweeps(redisOpts asynq.RedisClientOpt) {
	logger := utils.GetLogger().Sugar()
	client := asynq.NewClient(redisOpts)
	defer client.Close()

	interval := time.Duration(config.AppConfig.SweepIntervalMin) * time.Minute
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		task := asynq.NewTask(TypeBookingSweep, nil)
		if _, err := client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
			logger.Errorf("sweep worker: failed to enqueue sweep: %v", err)
		}
	}
}
