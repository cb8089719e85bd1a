package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

// publishBatchSize строк на один INSERT в PublishSlots, по 2 параметра на строку
const publishBatchSize = 1000

var reservationColumns = []string{
	"r.id",
	"r.slot_date",
	"r.slot_time",
	"r.status",
	"r.service",
	"r.duration_minutes",
	"r.user_name",
	"r.user_phone",
	"r.user_email",
	"r.meeting_type",
	"r.meeting_address",
	"r.meeting_district",
	"r.meeting_country",
	"r.created_at",
}

// Repository хранилище слотов и бронирований в PostgreSQL.
// Уникальность (slot_date, slot_time) обеспечивает ограничение reservations_slot_unique.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Ping проверяет доступность базы
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// PublishSlots добавляет слоты доступности, уже существующие пропускаются
func (r *Repository) PublishSlots(ctx context.Context, slots []domain.AvailabilitySlot) error {
	// Вставляем пачками: у PostgreSQL не больше 65535 параметров на запрос
	for start := 0; start < len(slots); start += publishBatchSize {
		end := start + publishBatchSize
		if end > len(slots) {
			end = len(slots)
		}

		builder := psqlbuilder.Insert("availability_slots").Columns("slot_date", "slot_time")
		for _, s := range slots[start:end] {
			builder = builder.Values(s.Date.Format(domain.DateFormat), s.Time)
		}

		query, args, err := builder.Suffix("ON CONFLICT (slot_date, slot_time) DO NOTHING").ToSql()
		if err != nil {
			return fmt.Errorf("%w: PublishSlots - build insert query: %v", ErrBuildQuery, err)
		}

		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: PublishSlots - execute insert (rows %d-%d): %v", ErrExecQuery, start, end, err)
		}
	}

	return nil
}

// ListSlots возвращает слоты доступности в диапазоне дат
func (r *Repository) ListSlots(ctx context.Context, dates domain.DateRange) ([]domain.AvailabilitySlot, error) {
	query, args, err := applyRange(
		psqlbuilder.Select("slot_date", "slot_time").From("availability_slots"),
		"slot_date", dates,
	).
		OrderBy("slot_date", "slot_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlots - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var slots []domain.AvailabilitySlot
	for rows.Next() {
		var s domain.AvailabilitySlot
		if err := rows.Scan(&s.Date, &s.Time); err != nil {
			return nil, fmt.Errorf("%w: ListSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// ListReservations возвращает бронирования и блокировки в диапазоне дат
func (r *Repository) ListReservations(ctx context.Context, dates domain.DateRange) ([]*domain.Reservation, error) {
	query, args, err := applyRange(
		psqlbuilder.Select(reservationColumns...).From("reservations r"),
		"r.slot_date", dates,
	).
		OrderBy("r.slot_date", "r.slot_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListReservations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListReservations - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// ReservationExists проверяет, занят ли слот
func (r *Repository) ReservationExists(ctx context.Context, date time.Time, t types.TimeString) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From("reservations").
		Where(squirrel.Eq{"slot_date": date.Format(domain.DateFormat), "slot_time": t}).
		Prefix("SELECT EXISTS(").
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ReservationExists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ReservationExists - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// Create вставляет бронирование.
// Повторная вставка того же (date, time) отклоняется ограничением уникальности и возвращает ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	user := res.User
	if user == nil {
		user = &domain.Contact{}
	}
	meeting := res.Meeting
	if meeting == nil {
		meeting = &domain.Meeting{}
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"slot_date",
			"slot_time",
			"status",
			"service",
			"duration_minutes",
			"user_name",
			"user_phone",
			"user_email",
			"meeting_type",
			"meeting_address",
			"meeting_district",
			"meeting_country",
		).
		Values(
			res.Date.Format(domain.DateFormat),
			res.Time,
			res.Status,
			res.Service,
			res.DurationMinutes,
			user.Name,
			user.Phone,
			user.Email,
			meeting.Type,
			meeting.Address,
			meeting.District,
			meeting.Country,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *res
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrSlotTaken, created.Key())
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}

// CreateNote сохраняет заметку к бронированию
func (r *Repository) CreateNote(ctx context.Context, reservationID int64, text string) error {
	query, args, err := psqlbuilder.Insert("reservation_notes").
		Columns("reservation_id", "note").
		Values(reservationID, text).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateNote - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateNote - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateReminder сохраняет время напоминания. Отправка напоминаний вне этого сервиса.
func (r *Repository) CreateReminder(ctx context.Context, reservationID int64, remindAt time.Time) error {
	query, args, err := psqlbuilder.Insert("reservation_reminders").
		Columns("reservation_id", "remind_at").
		Values(reservationID, remindAt.UTC()).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateReminder - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateReminder - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование вместе с заметкой и напоминанием
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	columns := append(append([]string{}, reservationColumns...), "n.note", "m.remind_at")

	query, args, err := psqlbuilder.Select(columns...).
		From("reservations r").
		LeftJoin("reservation_notes n ON n.reservation_id = r.id").
		LeftJoin("reservation_reminders m ON m.reservation_id = r.id").
		Where(squirrel.Eq{"r.id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		row      reservationRow
		note     sql.NullString
		remindAt sql.NullTime
	)

	err = r.db.QueryRowContext(ctx, query, args...).Scan(append(row.dest(), &note, &remindAt)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	res := row.toDomain()
	if note.Valid {
		res.Note = &note.String
	}
	if remindAt.Valid {
		res.RemindAt = &remindAt.Time
	}

	return res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	var reservations []*domain.Reservation

	for rows.Next() {
		var row reservationRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, row.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// reservationRow строка таблицы reservations в порядке reservationColumns
type reservationRow struct {
	res     domain.Reservation
	user    domain.Contact
	meeting domain.Meeting
}

func (row *reservationRow) dest() []interface{} {
	return []interface{}{
		&row.res.ID,
		&row.res.Date,
		&row.res.Time,
		&row.res.Status,
		&row.res.Service,
		&row.res.DurationMinutes,
		&row.user.Name,
		&row.user.Phone,
		&row.user.Email,
		&row.meeting.Type,
		&row.meeting.Address,
		&row.meeting.District,
		&row.meeting.Country,
		&row.res.CreatedAt,
	}
}

func (row *reservationRow) toDomain() *domain.Reservation {
	res := row.res
	if row.user != (domain.Contact{}) {
		user := row.user
		res.User = &user
	}
	if row.meeting != (domain.Meeting{}) {
		meeting := row.meeting
		res.Meeting = &meeting
	}
	return &res
}

func applyRange(b squirrel.SelectBuilder, column string, dates domain.DateRange) squirrel.SelectBuilder {
	if !dates.From.IsZero() {
		b = b.Where(squirrel.GtOrEq{column: dates.From.Format(domain.DateFormat)})
	}
	if !dates.To.IsZero() {
		b = b.Where(squirrel.LtOrEq{column: dates.To.Format(domain.DateFormat)})
	}
	return b
}
