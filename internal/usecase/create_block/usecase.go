package create_block

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
)

// UseCase use case для блокировки слота владельцем
type UseCase struct {
	ledgerRepo LedgerRepository
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(ledgerRepo LedgerRepository, logger Logger) *UseCase {
	return &UseCase{
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

// Execute блокирует слот. В отличие от бронирования, слот не обязан быть
// объявлен в расписании: владелец может закрыть любое время.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBlock: date=%s, time=%s", req.Date, req.Time)

	// 1. Валидация входных данных
	date, t, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBlock: validation failed: %v", err)
		return nil, err
	}
	key := domain.SlotKey(date, t)

	// 2. Слот не должен быть занят
	exists, err := uc.ledgerRepo.ReservationExists(ctx, date, t)
	if err != nil {
		uc.logger.Error("CreateBlock: failed to check reservation %s: %v", key, err)
		return nil, fmt.Errorf("%w: failed to check reservation: %v", ErrStoreUnavailable, err)
	}
	if exists {
		uc.logger.Warn("CreateBlock: slot %s already reserved", key)
		return nil, ErrSlotTaken
	}

	// 3. Вставка блокировки
	created, err := uc.ledgerRepo.Create(ctx, &domain.Reservation{
		Date:   date,
		Time:   t,
		Status: domain.StatusBlocked,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			uc.logger.Warn("CreateBlock: slot %s taken by a concurrent request", key)
			return nil, ErrSlotTaken
		}
		uc.logger.Error("CreateBlock: failed to create block %s: %v", key, err)
		return nil, fmt.Errorf("%w: failed to create block: %v", ErrStoreUnavailable, err)
	}

	uc.logger.Info("CreateBlock: successfully blocked %s, id=%d", key, created.ID)

	return &Response{
		ID:        created.ID,
		Date:      created.Date,
		Time:      created.Time,
		Status:    created.Status,
		CreatedAt: created.CreatedAt,
	}, nil
}
