package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/internal/service/reservations/models"
)

// Service сервис чтения бронирований владельцем расписания
type Service struct {
	repo   ReservationRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(repo ReservationRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetByID получает бронирование или блокировку по ID вместе с заметкой и напоминанием
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(res), nil
}

// List получает бронирования за период, опционально фильтруя по статусу.
// Пустые границы периода означают отсутствие ограничения.
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: fetching reservations from=%q to=%q", req.From, req.To)

	dates, err := parseRange(req.From, req.To)
	if err != nil {
		s.logger.Warn("List: invalid range: %v", err)
		return nil, err
	}

	var status domain.ReservationStatus
	if req.Status != nil {
		status = domain.ReservationStatus(strings.ToLower(*req.Status))
		if !status.Valid() {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
	}

	list, err := s.repo.ListReservations(ctx, dates)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	if status != "" {
		filtered := list[:0]
		for _, r := range list {
			if r.Status == status {
				filtered = append(filtered, r)
			}
		}
		list = filtered
	}

	s.logger.Info("List: successfully fetched %d reservations", len(list))
	return models.FromDomainReservationList(list), nil
}

func parseRange(from, to string) (domain.DateRange, error) {
	var dates domain.DateRange
	var err error

	if from != "" {
		if dates.From, err = domain.ParseDate(from); err != nil {
			return dates, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if to != "" {
		if dates.To, err = domain.ParseDate(to); err != nil {
			return dates, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if err := dates.Validate(); err != nil {
		return dates, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return dates, nil
}
