package workinghours

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	shopRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-ShopBooking/internal/service/workinghours/models"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// Service сервис рабочих часов магазина
type Service struct {
	hoursRepo WorkingHoursRepository
	shopRepo  ShopRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса рабочих часов
func NewService(
	hoursRepo WorkingHoursRepository,
	shopRepo ShopRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		hoursRepo: hoursRepo,
		shopRepo:  shopRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Get возвращает рабочие часы магазина на неделю
func (s *Service) Get(ctx context.Context, shopID uuid.UUID) (*models.WeekResponse, error) {
	s.logger.Info("Get: working hours for shop=%s", shopID)

	if err := s.ensureShop(ctx, "Get", shopID); err != nil {
		return nil, err
	}

	rows, err := s.hoursRepo.GetByShop(ctx, shopID)
	if err != nil {
		s.logger.Error("Get: repository error for shop=%s: %v", shopID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeek(shopID, rows), nil
}

// Replace заменяет рабочие часы магазина. Доступно только владельцу магазина.
// Уже созданные бронирования не пересматриваются.
func (s *Service) Replace(ctx context.Context, req *models.ReplaceRequest) (*models.WeekResponse, error) {
	s.logger.Info("Replace: working hours for shop=%s by actor=%s, %d day(s)", req.ShopID, req.ActorShopID, len(req.Days))

	// 1. Права
	if req.ShopID != req.ActorShopID {
		s.logger.Warn("Replace: shop=%s is not owned by actor=%s", req.ShopID, req.ActorShopID)
		return nil, ErrAccessDenied
	}

	// 2. Валидация
	week, err := toDomainWeek(req.ShopID, req.Days, time.Now().UTC())
	if err != nil {
		s.logger.Warn("Replace: validation failed: %v", err)
		return nil, err
	}

	// 3. Магазин существует
	if err := s.ensureShop(ctx, "Replace", req.ShopID); err != nil {
		return nil, err
	}

	// 4. Замена в транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.hoursRepo.ReplaceForShop(txCtx, req.ShopID, week)
	})
	if err != nil {
		s.logger.Error("Replace: repository error for shop=%s: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: Replace - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Replace: working hours for shop=%s updated", req.ShopID)
	return models.FromDomainWeek(req.ShopID, week), nil
}

func (s *Service) ensureShop(ctx context.Context, op string, shopID uuid.UUID) error {
	if _, err := s.shopRepo.GetShop(ctx, shopID); err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			s.logger.Warn("%s: shop=%s not found", op, shopID)
			return ErrShopNotFound
		}
		s.logger.Error("%s: failed to get shop=%s: %v", op, shopID, err)
		return fmt.Errorf("%w: %s - failed to get shop: %v", ErrInternal, op, err)
	}
	return nil
}

func toDomainWeek(shopID uuid.UUID, days []models.DayHours, now time.Time) ([]*domain.WorkingHours, error) {
	seen := make(map[int]bool, len(days))
	week := make([]*domain.WorkingHours, 0, len(days))

	for _, d := range days {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: dayOfWeek %d out of range 0-6", ErrInvalidInput, d.DayOfWeek)
		}
		if seen[d.DayOfWeek] {
			return nil, fmt.Errorf("%w: duplicate dayOfWeek %d", ErrInvalidInput, d.DayOfWeek)
		}
		seen[d.DayOfWeek] = true

		wh := &domain.WorkingHours{ShopID: shopID, DayOfWeek: d.DayOfWeek, IsClosed: d.IsClosed, UpdatedAt: now}
		if d.IsClosed {
			week = append(week, wh)
			continue
		}

		if d.OpenTime == nil || d.CloseTime == nil {
			return nil, fmt.Errorf("%w: day %d needs openTime and closeTime", ErrInvalidInput, d.DayOfWeek)
		}
		open, err := types.NewTimeStringFromString(*d.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("%w: day %d openTime: %v", ErrInvalidInput, d.DayOfWeek, err)
		}
		closeAt, err := types.NewTimeStringFromString(*d.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("%w: day %d closeTime: %v", ErrInvalidInput, d.DayOfWeek, err)
		}
		if !open.IsBefore(closeAt) {
			return nil, fmt.Errorf("%w: day %d opens at %s after closing at %s", ErrInvalidInput, d.DayOfWeek, open, closeAt)
		}

		wh.OpenTime, wh.CloseTime = &open, &closeAt
		week = append(week, wh)
	}

	return week, nil
}
