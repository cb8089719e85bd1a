package redisledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/pkg/errs"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

var (
	// ErrSlotTaken возвращается, когда на (date, time) уже есть бронирование или блокировка.
	// Имеет тип domain.KindSlotTaken.
	ErrSlotTaken = domain.NewError(domain.KindSlotTaken, "redisledger: slot already reserved")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("redisledger: %w", domain.ErrReservationNotFound)
)

// claimScript атомарно занимает ключ слота и сохраняет запись.
// KEYS: index, data, seq. ARGV: slot key, record json.
// Возвращает id или 0, если слот уже занят.
var claimScript = redis.NewScript(`
if redis.call("HEXISTS", KEYS[1], ARGV[1]) == 1 then
  return 0
end
local id = redis.call("INCR", KEYS[3])
redis.call("HSET", KEYS[1], ARGV[1], id)
redis.call("HSET", KEYS[2], id, ARGV[2])
return id
`)

// Repository хранилище слотов и бронирований в Redis
type Repository struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRepository создает репозиторий; все ключи начинаются с prefix
func NewRepository(rdb redis.UniversalClient, prefix string) *Repository {
	if prefix == "" {
		prefix = "slotledger"
	}
	return &Repository{rdb: rdb, prefix: prefix}
}

func (r *Repository) key(parts ...string) string {
	k := r.prefix
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

func (r *Repository) slotDatesKey() string { return r.key("slots", "dates") }
func (r *Repository) slotsKey(date string) string { return r.key("slots", date) }
func (r *Repository) indexKey() string { return r.key("reservations", "index") }
func (r *Repository) dataKey() string { return r.key("reservations", "data") }
func (r *Repository) seqKey() string { return r.key("reservations", "seq") }
func (r *Repository) notesKey() string { return r.key("notes") }
func (r *Repository) remindersKey() string { return r.key("reminders") }

// record формат хранения бронирования
type record struct {
	Date            string          `json:"date"`
	Time            string          `json:"time"`
	Status          string          `json:"status"`
	Service         string          `json:"service,omitempty"`
	DurationMinutes int             `json:"durationMinutes,omitempty"`
	User            *domain.Contact `json:"user,omitempty"`
	Meeting         *domain.Meeting `json:"meeting,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Ping проверяет доступность Redis
func (r *Repository) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// PublishSlots добавляет слоты доступности, повторное добавление ничего не меняет
func (r *Repository) PublishSlots(ctx context.Context, slots []domain.AvailabilitySlot) error {
	if len(slots) == 0 {
		return nil
	}

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, s := range slots {
			date := s.Date.Format(domain.DateFormat)
			pipe.SAdd(ctx, r.slotDatesKey(), date)
			pipe.SAdd(ctx, r.slotsKey(date), string(s.Time))
		}
		return nil
	})
	return errs.Wrap(err, "redisledger: PublishSlots")
}

// ListSlots возвращает слоты доступности в диапазоне дат
func (r *Repository) ListSlots(ctx context.Context, dates domain.DateRange) ([]domain.AvailabilitySlot, error) {
	allDates, err := r.rdb.SMembers(ctx, r.slotDatesKey()).Result()
	if err != nil {
		return nil, errs.Wrap(err, "redisledger: ListSlots - read dates")
	}

	type dateTimes struct {
		date time.Time
		cmd  *redis.StringSliceCmd
	}

	var selected []dateTimes
	pipe := r.rdb.Pipeline()
	for _, d := range allDates {
		date, err := domain.ParseDate(d)
		if err != nil || !dates.Contains(date) {
			continue
		}
		selected = append(selected, dateTimes{date: date, cmd: pipe.SMembers(ctx, r.slotsKey(d))})
	}

	if len(selected) == 0 {
		return nil, nil
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errs.Wrap(err, "redisledger: ListSlots - read times")
	}

	var slots []domain.AvailabilitySlot
	for _, dt := range selected {
		for _, t := range dt.cmd.Val() {
			slots = append(slots, domain.AvailabilitySlot{Date: dt.date, Time: types.TimeString(t)})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Key() < slots[j].Key() })
	return slots, nil
}

// ListReservations возвращает бронирования и блокировки в диапазоне дат
func (r *Repository) ListReservations(ctx context.Context, dates domain.DateRange) ([]*domain.Reservation, error) {
	data, err := r.rdb.HGetAll(ctx, r.dataKey()).Result()
	if err != nil {
		return nil, errs.Wrap(err, "redisledger: ListReservations")
	}

	reservations := make([]*domain.Reservation, 0, len(data))
	for idStr, raw := range data {
		res, err := decode(idStr, raw)
		if err != nil {
			return nil, err
		}
		if dates.Contains(res.Date) {
			reservations = append(reservations, res)
		}
	}

	sort.Slice(reservations, func(i, j int) bool { return reservations[i].Key() < reservations[j].Key() })
	return reservations, nil
}

// ReservationExists проверяет, занят ли слот
func (r *Repository) ReservationExists(ctx context.Context, date time.Time, t types.TimeString) (bool, error) {
	ok, err := r.rdb.HExists(ctx, r.indexKey(), domain.SlotKey(date, t)).Result()
	if err != nil {
		return false, errs.Wrap(err, "redisledger: ReservationExists")
	}
	return ok, nil
}

// Create атомарно занимает слот скриптом claimScript.
// Если слот уже занят, возвращает ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	created := *res
	created.CreatedAt = time.Now().UTC()

	raw, err := json.Marshal(record{
		Date:            created.Date.Format(domain.DateFormat),
		Time:            string(created.Time),
		Status:          string(created.Status),
		Service:         created.Service,
		DurationMinutes: created.DurationMinutes,
		User:            created.User,
		Meeting:         created.Meeting,
		CreatedAt:       created.CreatedAt,
	})
	if err != nil {
		return nil, errs.Wrap(err, "redisledger: Create - encode")
	}

	id, err := claimScript.Run(ctx, r.rdb,
		[]string{r.indexKey(), r.dataKey(), r.seqKey()},
		created.Key(), string(raw),
	).Int64()
	if err != nil {
		return nil, errs.Wrap(err, "redisledger: Create - claim")
	}
	if id == 0 {
		return nil, errs.Wrapf(ErrSlotTaken, "key %s", created.Key())
	}

	created.ID = id
	return &created, nil
}

// CreateNote сохраняет заметку к бронированию
func (r *Repository) CreateNote(ctx context.Context, reservationID int64, text string) error {
	err := r.rdb.HSet(ctx, r.notesKey(), strconv.FormatInt(reservationID, 10), text).Err()
	return errs.Wrap(err, "redisledger: CreateNote")
}

// CreateReminder сохраняет напоминание в sorted set по времени срабатывания
func (r *Repository) CreateReminder(ctx context.Context, reservationID int64, remindAt time.Time) error {
	err := r.rdb.ZAdd(ctx, r.remindersKey(), redis.Z{
		Score:  float64(remindAt.Unix()),
		Member: strconv.FormatInt(reservationID, 10),
	}).Err()
	return errs.Wrap(err, "redisledger: CreateReminder")
}

// GetByID получает бронирование вместе с заметкой и напоминанием
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	idStr := strconv.FormatInt(id, 10)

	pipe := r.rdb.Pipeline()
	dataCmd := pipe.HGet(ctx, r.dataKey(), idStr)
	noteCmd := pipe.HGet(ctx, r.notesKey(), idStr)
	remindCmd := pipe.ZScore(ctx, r.remindersKey(), idStr)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, errs.Wrap(err, "redisledger: GetByID")
	}

	raw, err := dataCmd.Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, errs.Wrap(err, "redisledger: GetByID - data")
	}

	res, err := decode(idStr, raw)
	if err != nil {
		return nil, err
	}

	if note, err := noteCmd.Result(); err == nil {
		res.Note = &note
	}
	if score, err := remindCmd.Result(); err == nil {
		at := time.Unix(int64(score), 0).UTC()
		res.RemindAt = &at
	}

	return res, nil
}

func decode(idStr, raw string) (*domain.Reservation, error) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, errs.Wrapf(err, "redisledger: bad reservation id %q", idStr)
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, errs.Wrapf(err, "redisledger: decode reservation %d", id)
	}

	date, err := domain.ParseDate(rec.Date)
	if err != nil {
		return nil, errs.Wrapf(err, "redisledger: reservation %d", id)
	}

	return &domain.Reservation{
		ID:              id,
		Date:            date,
		Time:            types.TimeString(rec.Time),
		Status:          domain.ReservationStatus(rec.Status),
		Service:         rec.Service,
		DurationMinutes: rec.DurationMinutes,
		User:            rec.User,
		Meeting:         rec.Meeting,
		CreatedAt:       rec.CreatedAt,
	}, nil
}
