package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SlotLedger/internal/config"
	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/internal/infra/storage/fileledger"
	"github.com/m04kA/SMC-SlotLedger/internal/infra/storage/ledger"
	"github.com/m04kA/SMC-SlotLedger/internal/infra/storage/redisledger"
	"github.com/m04kA/SMC-SlotLedger/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotLedger/pkg/logger"
	"github.com/m04kA/SMC-SlotLedger/pkg/metrics"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

// ledgerStore полный набор операций хранилища; реализуют ledger, redisledger и fileledger
type ledgerStore interface {
	Ping(ctx context.Context) error
	PublishSlots(ctx context.Context, slots []domain.AvailabilitySlot) error
	ListSlots(ctx context.Context, dates domain.DateRange) ([]domain.AvailabilitySlot, error)
	ListReservations(ctx context.Context, dates domain.DateRange) ([]*domain.Reservation, error)
	ReservationExists(ctx context.Context, date time.Time, t types.TimeString) (bool, error)
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	CreateNote(ctx context.Context, reservationID int64, text string) error
	CreateReminder(ctx context.Context, reservationID int64, remindAt time.Time) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

var (
	_ ledgerStore = (*ledger.Repository)(nil)
	_ ledgerStore = (*redisledger.Repository)(nil)
	_ ledgerStore = (*fileledger.Repository)(nil)
)

// appOptions режим запуска команды
type appOptions struct {
	withMetrics bool // HTTP сервер: собирать метрики, если включены в конфиге
	quiet       bool // одноразовые CLI команды: только предупреждения и ошибки
}

// app зависимости, общие для команд
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics // nil, если метрики выключены
	store   ledgerStore
	sqlDB   dbmetrics.DBExecutor // только для драйвера postgres

	stopMetrics chan struct{}
	closers     []func() error
}

func newApp(ctx context.Context, configPath string, opts appOptions) (*app, error) {
	// 1. Конфигурация
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Логгер
	level := cfg.Logs.Level
	if opts.quiet && (level == "" || strings.EqualFold(level, "info") || strings.EqualFold(level, "debug")) {
		level = "warn"
	}
	log, err := logger.New(cfg.Logs.File, level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &app{
		cfg:         cfg,
		log:         log,
		stopMetrics: make(chan struct{}),
	}

	// 3. Метрики
	if opts.withMetrics && cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// 4. Хранилище
	if err := a.openStore(ctx); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func (a *app) openStore(ctx context.Context) error {
	cfg := a.cfg

	switch cfg.Ledger.Driver {
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}
		a.log.Info("Connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		a.sqlDB = db
		if a.metrics != nil {
			a.sqlDB = dbmetrics.WrapWithDefault(db, a.metrics, a.stopMetrics)
			a.log.Info("Database metrics collection started")
		}
		a.store = ledger.NewRepository(a.sqlDB)

	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.closers = append(a.closers, rdb.Close)

		store := redisledger.NewRepository(rdb, cfg.Redis.KeyPrefix)
		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("failed to ping redis: %w", err)
		}
		a.log.Info("Connected to redis (addr=%s, db=%d, prefix=%s)", cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.KeyPrefix)
		a.store = store

	case config.DriverFile:
		store, err := fileledger.NewRepository(cfg.File.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open file ledger: %w", err)
		}
		a.log.Info("Using file ledger in %s", cfg.File.DataDir)
		a.store = store

	default:
		return fmt.Errorf("unsupported ledger driver %q", cfg.Ledger.Driver)
	}

	return nil
}

// Close останавливает сбор метрик и закрывает соединения в обратном порядке
func (a *app) Close() {
	select {
	case <-a.stopMetrics:
	default:
		close(a.stopMetrics)
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("Close: %v", err)
		}
	}
	a.closers = nil

	_ = a.log.Close()
}

// requestContext контекст одного обращения к хранилищу из CLI
func (a *app) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(a.cfg.Server.RequestTimeout) * time.Second
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
