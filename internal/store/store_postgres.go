package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/limaJavier/unit-timetabling/pkg/model"
)

const microsecondsPerMinute = 60_000_000

var entryColumns = []string{"unit_id", "lecturer_id", "room_id", "time_slot_id", "student_group_id", "week_type"}

// sessionColumns maps session profiles to the values allowed by the time_slots.session_type check constraint
var sessionColumns = map[model.SessionType]string{
	model.LongSession:  "spas_3h",
	model.ShortSession: "shs_2h",
}

type postgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresStore works on the tables schools, departments, lecturers, rooms, units, student_groups,
// time_slots and timetable_entries. The schema must already exist
func NewPostgresStore(ctx context.Context, dsn string, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}
	return &postgresStore{pool: pool, logger: logger.With(zap.String("store", "postgres"))}, nil
}

func (store *postgresStore) Load(ctx context.Context) (model.ModelInput, error) {
	var input model.ModelInput
	var err error

	if input.Schools, err = query(ctx, store.pool, "SELECT id, name, code FROM schools ORDER BY id",
		func(row pgx.CollectableRow) (model.School, error) {
			var school model.School
			err := row.Scan(&school.Id, &school.Name, &school.Code)
			return school, err
		}); err != nil {
		return model.ModelInput{}, err
	}

	if input.Departments, err = query(ctx, store.pool, "SELECT id, name, code, COALESCE(school_id, 0) FROM departments ORDER BY id",
		func(row pgx.CollectableRow) (model.Department, error) {
			var department model.Department
			err := row.Scan(&department.Id, &department.Name, &department.Code, &department.SchoolId)
			return department, err
		}); err != nil {
		return model.ModelInput{}, err
	}

	if input.Lecturers, err = query(ctx, store.pool,
		"SELECT id, name, employee_id, employment_type, max_units, COALESCE(phone, ''), COALESCE(email, '') FROM lecturers ORDER BY id",
		func(row pgx.CollectableRow) (model.Lecturer, error) {
			var lecturer model.Lecturer
			err := row.Scan(&lecturer.Id, &lecturer.Name, &lecturer.EmployeeId, &lecturer.EmploymentType,
				&lecturer.MaxUnits, &lecturer.Phone, &lecturer.Email)
			return lecturer, err
		}); err != nil {
		return model.ModelInput{}, err
	}

	if input.Rooms, err = query(ctx, store.pool, "SELECT id, name, capacity, room_type FROM rooms ORDER BY id",
		func(row pgx.CollectableRow) (model.Room, error) {
			var room model.Room
			err := row.Scan(&room.Id, &room.Name, &room.Capacity, &room.RoomType)
			return room, err
		}); err != nil {
		return model.ModelInput{}, err
	}

	if input.Units, err = query(ctx, store.pool,
		"SELECT id, name, code, COALESCE(department_id, 0), year_level, semester, COALESCE(requires_lab, false), COALESCE(lecturer_id, 0) FROM units ORDER BY id",
		func(row pgx.CollectableRow) (model.Unit, error) {
			var unit model.Unit
			err := row.Scan(&unit.Id, &unit.Name, &unit.Code, &unit.DepartmentId, &unit.YearLevel,
				&unit.Semester, &unit.RequiresLab, &unit.LecturerId)
			return unit, err
		}); err != nil {
		return model.ModelInput{}, err
	}

	if input.StudentGroups, err = query(ctx, store.pool,
		"SELECT id, COALESCE(department_id, 0), year_level, group_size FROM student_groups ORDER BY id",
		func(row pgx.CollectableRow) (model.StudentGroup, error) {
			var group model.StudentGroup
			err := row.Scan(&group.Id, &group.DepartmentId, &group.YearLevel, &group.Size)
			return group, err
		}); err != nil {
		return model.ModelInput{}, err
	}

	if input.TimeSlots, err = query(ctx, store.pool,
		"SELECT id, day_of_week, start_time, end_time, session_type FROM time_slots ORDER BY id",
		scanTimeSlot); err != nil {
		return model.ModelInput{}, err
	}

	if err := input.Check(); err != nil {
		return model.ModelInput{}, err
	}
	store.logger.Debug("snapshot loaded",
		zap.Int("units", len(input.Units)),
		zap.Int("rooms", len(input.Rooms)),
		zap.Int("time_slots", len(input.TimeSlots)),
	)
	return input, nil
}

func (store *postgresStore) ReplaceTimeSlots(ctx context.Context, slots []model.TimeSlot) ([]model.TimeSlot, error) {
	tx, err := store.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Entries reference time slots and go first
	if _, err := tx.Exec(ctx, "DELETE FROM timetable_entries"); err != nil {
		return nil, fmt.Errorf("cannot clear timetable: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM time_slots"); err != nil {
		return nil, fmt.Errorf("cannot clear time slots: %w", err)
	}

	batch := &pgx.Batch{}
	for _, slot := range slots {
		session, err := sessionToColumn(slot.SessionType)
		if err != nil {
			return nil, err
		}
		batch.Queue(
			"INSERT INTO time_slots (day_of_week, start_time, end_time, session_type) VALUES ($1, $2, $3, $4) RETURNING id",
			slot.DayOfWeek, clockToTime(slot.StartTime), clockToTime(slot.EndTime), session,
		)
	}

	results := tx.SendBatch(ctx, batch)
	persisted := make([]model.TimeSlot, len(slots))
	for i, slot := range slots {
		if err := results.QueryRow().Scan(&slot.Id); err != nil {
			results.Close()
			return nil, fmt.Errorf("cannot insert time slot %v: %w", i+1, err)
		}
		persisted[i] = slot
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("cannot insert time slots: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("cannot commit time slots: %w", err)
	}
	store.logger.Info("time slots replaced", zap.Int("slots", len(persisted)))
	return persisted, nil
}

func (store *postgresStore) ReplaceTimetable(ctx context.Context, entries []model.TimetableEntry) error {
	tx, err := store.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("cannot begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM timetable_entries"); err != nil {
		return fmt.Errorf("cannot clear timetable: %w", err)
	}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"timetable_entries"}, entryColumns,
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			entry := entries[i]
			return []any{
				int64(entry.UnitId),
				int64(entry.LecturerId),
				int64(entry.RoomId),
				int64(entry.TimeSlotId),
				int64(entry.StudentGroupId),
				string(entry.WeekType),
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("cannot insert timetable entries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("cannot commit timetable: %w", err)
	}
	store.logger.Info("timetable replaced", zap.Int64("entries", copied))
	return nil
}

func (store *postgresStore) Timetable(ctx context.Context) ([]model.TimetableEntry, error) {
	return query(ctx, store.pool,
		"SELECT unit_id, lecturer_id, room_id, time_slot_id, student_group_id, COALESCE(week_type, 'all') FROM timetable_entries ORDER BY id",
		func(row pgx.CollectableRow) (model.TimetableEntry, error) {
			var entry model.TimetableEntry
			err := row.Scan(&entry.UnitId, &entry.LecturerId, &entry.RoomId, &entry.TimeSlotId,
				&entry.StudentGroupId, &entry.WeekType)
			return entry, err
		})
}

func (store *postgresStore) Close() {
	store.pool.Close()
}

func query[T any](ctx context.Context, pool *pgxpool.Pool, sql string, scan pgx.RowToFunc[T]) ([]T, error) {
	rows, err := pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, fmt.Errorf("cannot scan rows: %w", err)
	}
	return items, nil
}

func scanTimeSlot(row pgx.CollectableRow) (model.TimeSlot, error) {
	var slot model.TimeSlot
	var start, end pgtype.Time
	var session string
	if err := row.Scan(&slot.Id, &slot.DayOfWeek, &start, &end, &session); err != nil {
		return model.TimeSlot{}, err
	}
	sessionType, err := sessionFromColumn(session)
	if err != nil {
		return model.TimeSlot{}, fmt.Errorf("time slot %v: %w", slot.Id, err)
	}
	slot.SessionType = sessionType
	if !start.Valid || !end.Valid {
		return model.TimeSlot{}, fmt.Errorf("time slot %v has a null start or end time", slot.Id)
	}
	slot.StartTime = timeToClock(start)
	slot.EndTime = timeToClock(end)
	return slot, nil
}

func sessionToColumn(sessionType model.SessionType) (string, error) {
	column, ok := sessionColumns[sessionType]
	if !ok {
		return "", fmt.Errorf("unknown session type: %v", sessionType)
	}
	return column, nil
}

func sessionFromColumn(column string) (model.SessionType, error) {
	for sessionType, value := range sessionColumns {
		if value == column {
			return sessionType, nil
		}
	}
	return "", fmt.Errorf("unknown session_type column value: %v", column)
}

func clockToTime(clock model.Clock) pgtype.Time {
	return pgtype.Time{Microseconds: int64(clock) * microsecondsPerMinute, Valid: true}
}

func timeToClock(time pgtype.Time) model.Clock {
	return model.Clock(time.Microseconds / microsecondsPerMinute)
}
