// Package reaper периодически удаляет просроченные холды
package reaper

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/m04kA/SMC-ShopBooking/internal/usecase/reap_expired_holds"
)

// HoldReaper интерфейс use case очистки холдов
type HoldReaper interface {
	Execute(ctx context.Context) (*reap_expired_holds.ReapResponse, error)
	Count(ctx context.Context) (*reap_expired_holds.CountResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker gocron-планировщик с одной интервальной задачей
type Worker struct {
	scheduler gocron.Scheduler
	reaper    HoldReaper
	interval  time.Duration
	logger    Logger
}

// New создает планировщик и регистрирует задачу очистки.
// Задача не запускается параллельно сама с собой.
func New(reaper HoldReaper, interval time.Duration, logger Logger) (*Worker, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("reaper: interval must be positive, got %s", interval)
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("reaper: create scheduler: %w", err)
	}

	w := &Worker{
		scheduler: scheduler,
		reaper:    reaper,
		interval:  interval,
		logger:    logger,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(w.run),
		gocron.WithName("reap-expired-holds"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("reaper: register job: %w", err)
	}

	return w, nil
}

// Start запускает планировщик
func (w *Worker) Start() {
	w.logger.Info("Reaper: started, interval=%s", w.interval)
	w.scheduler.Start()
}

// Stop останавливает планировщик и ждет завершения текущего запуска
func (w *Worker) Stop() error {
	if err := w.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("reaper: shutdown: %w", err)
	}
	w.logger.Info("Reaper: stopped")
	return nil
}

func (w *Worker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	if _, err := w.reaper.Execute(ctx); err != nil {
		w.logger.Error("Reaper: run failed: %v", err)
		return
	}

	if _, err := w.reaper.Count(ctx); err != nil {
		w.logger.Warn("Reaper: failed to refresh expired holds gauge: %v", err)
	}
}
