package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
)

// UseCase use case для создания бронирования клиентом
type UseCase struct {
	ledgerRepo LedgerRepository
	opts       Options
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ledgerRepo LedgerRepository,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &UseCase{
		ledgerRepo: ledgerRepo,
		opts:       opts,
		logger:     logger,
	}
}

// Execute выполняет use case создания бронирования.
// Окончательную проверку занятости выполняет хранилище: из нескольких
// одновременных запросов на один слот успешен ровно один.
//
// При ErrPartialWriteDegraded возвращается и ответ: бронирование сохранено,
// потеряна только заметка или напоминание.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, time=%s, service=%q", req.Date, req.Time, req.Service)

	// 1. Валидация входных данных
	date, t, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	key := domain.SlotKey(date, t)

	// 2. Слот должен быть объявлен в расписании
	slots, err := uc.ledgerRepo.ListSlots(ctx, domain.SingleDate(date))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to read availability: %v", err)
		return nil, fmt.Errorf("%w: failed to read availability: %v", ErrStoreUnavailable, err)
	}

	if !isOffered(slots, date, t) {
		uc.logger.Warn("CreateBooking: slot %s is not offered", key)
		return nil, ErrSlotNotOffered
	}

	// 3. Слот не должен быть занят
	exists, err := uc.ledgerRepo.ReservationExists(ctx, date, t)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check reservation %s: %v", key, err)
		return nil, fmt.Errorf("%w: failed to check reservation: %v", ErrStoreUnavailable, err)
	}
	if exists {
		uc.logger.Warn("CreateBooking: slot %s already reserved", key)
		return nil, ErrSlotTaken
	}

	// 4. Вставка. Гонку между шагами 3 и 4 закрывает ограничение уникальности хранилища
	created, err := uc.ledgerRepo.Create(ctx, &domain.Reservation{
		Date:            date,
		Time:            t,
		Status:          domain.StatusBooked,
		Service:         req.Service,
		DurationMinutes: req.DurationMinutes,
		User:            req.User,
		Meeting:         req.Meeting,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			uc.logger.Warn("CreateBooking: slot %s taken by a concurrent request", key)
			return nil, ErrSlotTaken
		}
		uc.logger.Error("CreateBooking: failed to create reservation %s: %v", key, err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrStoreUnavailable, err)
	}

	uc.logger.Info("CreateBooking: successfully created reservation id=%d for %s", created.ID, key)

	resp := toResponse(created)

	// 5. Заметка и напоминание. Бронирование уже сохранено и не откатывается
	if note := req.Note; note != "" {
		if err := uc.ledgerRepo.CreateNote(ctx, created.ID, note); err != nil {
			uc.logger.Error("CreateBooking: failed to save note for id=%d: %v", created.ID, err)
			resp.Warnings = append(resp.Warnings, "note was not saved")
		} else {
			resp.Note = &note
		}
	}

	if req.Reminder {
		if err := uc.createReminder(ctx, created, resp); err != nil {
			uc.logger.Error("CreateBooking: failed to save reminder for id=%d: %v", created.ID, err)
			resp.Warnings = append(resp.Warnings, "reminder was not saved")
		}
	}

	if len(resp.Warnings) > 0 {
		return resp, fmt.Errorf("%w: %s", ErrPartialWriteDegraded, strings.Join(resp.Warnings, "; "))
	}

	return resp, nil
}

func (uc *UseCase) createReminder(ctx context.Context, created *domain.Reservation, resp *Response) error {
	remindAt, err := reminderTime(created.Date, created.Time, uc.opts.Location, uc.opts.ReminderLead)
	if err != nil {
		return err
	}
	if err := uc.ledgerRepo.CreateReminder(ctx, created.ID, remindAt); err != nil {
		return err
	}
	resp.RemindAt = &remindAt
	return nil
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:              r.ID,
		Date:            r.Date,
		Time:            r.Time,
		Status:          r.Status,
		Service:         r.Service,
		DurationMinutes: r.DurationMinutes,
		User:            r.User,
		Meeting:         r.Meeting,
		CreatedAt:       r.CreatedAt,
	}
}
