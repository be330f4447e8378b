package analytics

import (
	"context"
	"time"

	"github.com/muhammadheryan/picking-engine/constant"
	"github.com/muhammadheryan/picking-engine/model"
	sessionrepo "github.com/muhammadheryan/picking-engine/repository/session"
	"github.com/muhammadheryan/picking-engine/utils/errors"
	"github.com/muhammadheryan/picking-engine/utils/logger"
	"go.uber.org/zap"
)

// AnalyticsApp reads completed-session history. It never mutates sessions.
type AnalyticsApp interface {
	PickerPerformance(ctx context.Context, orgID, pickerID uint64, from, to time.Time) (*model.PickerPerformance, error)
	WarehouseDailyStats(ctx context.Context, orgID, warehouseID uint64, from, to time.Time) ([]model.WarehouseDailyStats, error)
	SessionErrors(ctx context.Context, sessionID string) ([]model.SessionError, error)
}

type analyticsAppImpl struct {
	sessionRepo sessionrepo.SessionRepository
}

func NewAnalyticsApp(sessionRepo sessionrepo.SessionRepository) AnalyticsApp {
	return &analyticsAppImpl{sessionRepo: sessionRepo}
}

func (s *analyticsAppImpl) PickerPerformance(ctx context.Context, orgID, pickerID uint64, from, to time.Time) (*model.PickerPerformance, error) {
	if !from.Before(to) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	perf, err := s.sessionRepo.GetPickerPerformance(ctx, orgID, pickerID, from, to)
	if err != nil {
		logger.Error("[PickerPerformance] query", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return perf, nil
}

func (s *analyticsAppImpl) SessionErrors(ctx context.Context, sessionID string) ([]model.SessionError, error) {
	errs, err := s.sessionRepo.ListSessionErrors(ctx, sessionID)
	if err != nil {
		logger.Error("[SessionErrors] query", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return errs, nil
}

func (s *analyticsAppImpl) WarehouseDailyStats(ctx context.Context, orgID, warehouseID uint64, from, to time.Time) ([]model.WarehouseDailyStats, error) {
	if !from.Before(to) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	stats, err := s.sessionRepo.GetWarehouseDailyStats(ctx, orgID, warehouseID, from, to)
	if err != nil {
		logger.Error("[WarehouseDailyStats] query", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return stats, nil
}
