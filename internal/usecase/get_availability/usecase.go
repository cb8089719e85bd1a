package get_availability

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
)

// UseCase use case для получения свободных слотов
type UseCase struct {
	ledgerRepo LedgerRepository
	catalog    *domain.ServiceCatalog
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ledgerRepo LedgerRepository,
	catalog *domain.ServiceCatalog,
	logger Logger,
) *UseCase {
	if catalog == nil {
		catalog = domain.NewServiceCatalog(domain.DefaultEarliestMinute, domain.DefaultLatestMinute, nil)
	}
	return &UseCase{
		ledgerRepo: ledgerRepo,
		catalog:    catalog,
		logger:     logger,
	}
}

// Execute выполняет use case получения свободных слотов.
// Слоты и бронирования читаются параллельно; если не удалось прочитать хотя бы
// один снимок, ответ не возвращается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: from=%q, to=%q, service=%q", req.From, req.To, req.Service)

	// 1. Валидация входных данных
	dates, err := parseRange(req)
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	window, err := buildWindow(req, uc.catalog)
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Читаем оба снимка
	var (
		slots        []domain.AvailabilitySlot
		reservations []*domain.Reservation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if slots, err = uc.ledgerRepo.ListSlots(gctx, dates); err != nil {
			return fmt.Errorf("list slots: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if reservations, err = uc.ledgerRepo.ListReservations(gctx, dates); err != nil {
			return fmt.Errorf("list reservations: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		uc.logger.Error("GetAvailability: failed to read ledger: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// 3. Вычитаем занятые слоты и применяем окно
	open, skipped := resolveOpenSlots(slots, reservations, window)
	if len(skipped) > 0 {
		uc.logger.Warn("GetAvailability: skipped %d slots with malformed time: %v", len(skipped), skipped)
	}

	uc.logger.Info("GetAvailability: %d declared slots, %d reservations, %d open dates",
		len(slots), len(reservations), len(open))

	return &Response{Slots: open, Window: window}, nil
}
