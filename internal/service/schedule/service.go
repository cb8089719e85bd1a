package schedule

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/internal/service/schedule/models"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

// Service сервис публикации расписания владельцем
type Service struct {
	repo   SlotRepository
	window domain.ServiceWindow
	logger Logger
}

// NewService создает новый экземпляр сервиса расписания.
// window задает рабочие часы для генерации времени по шагу.
func NewService(repo SlotRepository, window domain.ServiceWindow, logger Logger) *Service {
	return &Service{
		repo:   repo,
		window: window,
		logger: logger,
	}
}

// Publish объявляет слоты. Повторная публикация существующих слотов ничего не меняет.
func (s *Service) Publish(ctx context.Context, req *models.PublishRequest) (*models.PublishResponse, error) {
	s.logger.Info("Publish: from=%s, to=%s, times=%v, step=%d", req.From, req.To, req.Times, req.StepMinutes)

	// 1. Даты
	dates, err := expandDates(req.From, req.To)
	if err != nil {
		s.logger.Warn("Publish: invalid dates: %v", err)
		return nil, err
	}

	// 2. Время: явный список или генерация по шагу
	var times []types.TimeString
	if len(req.Times) > 0 {
		times, err = parseTimes(req.Times)
	} else {
		times, err = s.generateTimes(req.StepMinutes)
	}
	if err != nil {
		s.logger.Warn("Publish: invalid times: %v", err)
		return nil, err
	}

	// 3. Декартово произведение
	set := domain.OpenSlotSet{}
	slots := make([]domain.AvailabilitySlot, 0, len(dates)*len(times))
	for _, d := range dates {
		for _, t := range times {
			slots = append(slots, domain.AvailabilitySlot{Date: d, Time: t})
			set.Add(d.Format(domain.DateFormat), t)
		}
	}
	set.Normalize()

	if err := s.repo.PublishSlots(ctx, slots); err != nil {
		s.logger.Error("Publish: repository error: %v", err)
		return nil, fmt.Errorf("%w: Publish - repository error: %v", ErrInternal, err)
	}

	resp := &models.PublishResponse{
		Dates:     set.Dates(),
		Published: len(slots),
	}
	for _, t := range times {
		resp.Times = append(resp.Times, t.String())
	}

	s.logger.Info("Publish: successfully published %d slots on %d dates", len(slots), len(dates))
	return resp, nil
}

// List возвращает объявленные слоты без учета бронирований
func (s *Service) List(ctx context.Context, req *models.ListRequest) (models.SlotsResponse, error) {
	s.logger.Info("List: fetching slots from=%q to=%q", req.From, req.To)

	var dates domain.DateRange
	var err error
	if req.From != "" {
		if dates.From, err = domain.ParseDate(req.From); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if req.To != "" {
		if dates.To, err = domain.ParseDate(req.To); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if err := dates.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	slots, err := s.repo.ListSlots(ctx, dates)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	set := domain.OpenSlotSet{}
	for _, slot := range slots {
		set.Add(slot.Date.Format(domain.DateFormat), slot.Time)
	}
	set.Normalize()

	resp := models.SlotsResponse{}
	for date, times := range set {
		for _, t := range times {
			resp[date] = append(resp[date], t.String())
		}
	}

	s.logger.Info("List: successfully fetched %d slots", len(slots))
	return resp, nil
}

// generateTimes строит время начала с шагом step, укладывающееся в рабочее окно
func (s *Service) generateTimes(step int) ([]types.TimeString, error) {
	if step < domain.MinDurationMinutes || step > domain.MaxDurationMinutes {
		return nil, fmt.Errorf("%w: step must be between %d and %d minutes", ErrInvalidInput,
			domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	window := s.window
	window.DurationMinutes = step

	var times []types.TimeString
	for m := window.EarliestMinute; window.Fits(m); m += step {
		t, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			break
		}
		times = append(times, t)
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("%w: step %d does not fit working hours", ErrInvalidInput, step)
	}
	return times, nil
}

func expandDates(from, to string) ([]time.Time, error) {
	if strings.TrimSpace(from) == "" {
		return nil, fmt.Errorf("%w: from date is required", ErrInvalidInput)
	}
	start, err := domain.ParseDate(from)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	end := start
	if to != "" {
		if end, err = domain.ParseDate(to); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range end %s is before start %s", ErrInvalidInput, to, from)
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if len(dates) == maxPublishDays {
			return nil, fmt.Errorf("%w: range exceeds %d days", ErrInvalidInput, maxPublishDays)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func parseTimes(raw []string) ([]types.TimeString, error) {
	seen := make(map[types.TimeString]struct{}, len(raw))
	times := make([]types.TimeString, 0, len(raw))
	for _, r := range raw {
		t, err := types.NewTimeStringFromString(strings.TrimSpace(r))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid time %q: %v", ErrInvalidInput, r, err)
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return times, nil
}
