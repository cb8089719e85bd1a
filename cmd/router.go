package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotLedger/internal/api/handlers"
	createBlockHandler "github.com/m04kA/SMC-SlotLedger/internal/api/handlers/create_block"
	createBookingHandler "github.com/m04kA/SMC-SlotLedger/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-SlotLedger/internal/api/handlers/get_availability"
	getReservationHandler "github.com/m04kA/SMC-SlotLedger/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/m04kA/SMC-SlotLedger/internal/api/handlers/list_reservations"
	listSlotsHandler "github.com/m04kA/SMC-SlotLedger/internal/api/handlers/list_slots"
	publishSlotsHandler "github.com/m04kA/SMC-SlotLedger/internal/api/handlers/publish_slots"
	"github.com/m04kA/SMC-SlotLedger/internal/api/middleware"
	reservationsService "github.com/m04kA/SMC-SlotLedger/internal/service/reservations"
	scheduleService "github.com/m04kA/SMC-SlotLedger/internal/service/schedule"
	createBlockUC "github.com/m04kA/SMC-SlotLedger/internal/usecase/create_block"
	createBookingUC "github.com/m04kA/SMC-SlotLedger/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-SlotLedger/internal/usecase/get_availability"
)

const readinessTimeout = 2 * time.Second

// newRouter собирает use cases, сервисы и handlers поверх хранилища приложения
func newRouter(a *app) (*mux.Router, error) {
	cfg := a.cfg
	log := a.log

	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to build service catalog: %w", err)
	}
	window, err := cfg.Schedule.Window(0)
	if err != nil {
		return nil, err
	}

	// Сервисы
	reservationsSvc := reservationsService.NewService(a.store, log)
	scheduleSvc := scheduleService.NewService(a.store, window, log)

	// Use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(a.store, catalog, log)
	createBookingUseCase := createBookingUC.NewUseCase(a.store, createBookingUC.Options{
		Location:     cfg.Schedule.Location(),
		ReminderLead: cfg.Schedule.ReminderLead(),
	}, log)
	createBlockUseCase := createBlockUC.NewUseCase(a.store, log)

	// Handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createBlock := createBlockHandler.NewHandler(createBlockUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	publishSlots := publishSlotsHandler.NewHandler(scheduleSvc, log)
	listSlots := listSlotsHandler.NewHandler(scheduleSvc, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID, mux.MiddlewareFunc(middleware.AccessLog(log)))

	if a.metrics != nil {
		r.Use(mux.MiddlewareFunc(middleware.Metrics(a.metrics)))
		r.Handle(cfg.Metrics.Path, a.metrics.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Проверки живости и готовности
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/readyz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), readinessTimeout)
		defer cancel()

		if err := a.store.Ping(ctx); err != nil {
			log.Warn("GET /readyz - store is not ready: %v", err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(mux.MiddlewareFunc(middleware.Deadline(time.Duration(cfg.Server.RequestTimeout) * time.Second)))

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Свободные слоты
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Бронирование клиентом, с ограничением частоты по IP
	public := api.PathPrefix("").Subrouter()
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).TrustForwardedFor(cfg.RateLimit.TrustProxy)
	public.Use(mux.MiddlewareFunc(limiter.Middleware()))
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// OWNER ROUTES (требуют X-Owner-Token header)
	// ============================================================

	owner := api.PathPrefix("").Subrouter()
	owner.Use(mux.MiddlewareFunc(middleware.OwnerAuth(cfg.Admin.Token, log)))

	// --- Блокировки ---
	owner.HandleFunc("/blocks", createBlock.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	owner.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// --- Расписание ---
	owner.HandleFunc("/slots", publishSlots.Handle).Methods(http.MethodPost)
	owner.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)

	if cfg.Admin.Token == "" {
		log.Warn("admin.token is empty: owner routes will reject every request")
	}

	return r, nil
}
