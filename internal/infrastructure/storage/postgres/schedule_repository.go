package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"hospitalsched/internal/domain/schedule"
)

const scheduleColumns = `id, doctor_name, patient_name, department, date_time,
	file_url, file_name, file_size, file_type`

// dateTimeText должен совпадать с schedule.Schedule.DateTimeText для UTC.
const dateTimeText = `to_char(date_time AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"')`

var sortColumns = map[string]string{
	schedule.SortByDoctorName:  "lower(doctor_name)",
	schedule.SortByPatientName: "lower(patient_name)",
	schedule.SortByDepartment:  "lower(department)",
	schedule.SortByDateTime:    "date_time",
}

type ScheduleRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewScheduleRepository(db *Storage, log *slog.Logger) *ScheduleRepository {
	return &ScheduleRepository{
		db:  db,
		log: log.With("component", "schedule_repository", "backend", "postgres"),
	}
}

func (r *ScheduleRepository) Create(ctx context.Context, s schedule.Schedule) error {
	_, err := r.db.Pool().Exec(ctx,
		`INSERT INTO schedules (`+scheduleColumns+`)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.DoctorName, s.PatientName, s.Department, s.DateTime,
		s.FileURL, s.FileName, s.FileSize, s.FileType)
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}

	return nil
}

func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (schedule.Schedule, error) {
	row := r.db.Pool().QueryRow(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE id = $1`, id)

	s, err := scanSchedule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("select schedule: %w", err)
	}

	return s, nil
}

func (r *ScheduleRepository) List(ctx context.Context, q schedule.ListQuery) (schedule.Page, error) {
	where, args := listFilter(q)

	var total int
	if err := r.db.Pool().QueryRow(ctx,
		`SELECT COUNT(*) FROM schedules WHERE `+where, args...).Scan(&total); err != nil {
		return schedule.Page{}, fmt.Errorf("count schedules: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM schedules WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		scheduleColumns, where, orderBy(q), len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return schedule.Page{}, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	data := make([]schedule.Schedule, 0, q.Limit)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return schedule.Page{}, fmt.Errorf("scan schedule: %w", err)
		}
		data = append(data, s)
	}
	if err := rows.Err(); err != nil {
		return schedule.Page{}, fmt.Errorf("list schedules: %w", err)
	}

	return schedule.Page{
		Data:       data,
		Pagination: schedule.NewPagination(total, q.Page, q.Limit),
	}, nil
}

func (r *ScheduleRepository) Update(ctx context.Context, s schedule.Schedule) error {
	tag, err := r.db.Pool().Exec(ctx,
		`UPDATE schedules
         SET doctor_name = $2, patient_name = $3, department = $4, date_time = $5,
             file_url = $6, file_name = $7, file_size = $8, file_type = $9
         WHERE id = $1`,
		s.ID, s.DoctorName, s.PatientName, s.Department, s.DateTime,
		s.FileURL, s.FileName, s.FileSize, s.FileType)
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrNotFound
	}

	return nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrNotFound
	}

	return nil
}

func (r *ScheduleRepository) All(ctx context.Context) ([]schedule.Schedule, error) {
	rows, err := r.db.Pool().Query(ctx,
		`SELECT `+scheduleColumns+` FROM schedules ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("select schedules: %w", err)
	}
	defer rows.Close()

	var out []schedule.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

func scanSchedule(row pgx.Row) (schedule.Schedule, error) {
	var s schedule.Schedule
	err := row.Scan(&s.ID, &s.DoctorName, &s.PatientName, &s.Department, &s.DateTime,
		&s.FileURL, &s.FileName, &s.FileSize, &s.FileType)
	s.DateTime = s.DateTime.UTC()

	return s, err
}

// listFilter собирает WHERE с позиционными параметрами. Пустой фильтр
// превращается в '%', то есть совпадает со всем.
func listFilter(q schedule.ListQuery) (string, []any) {
	conds := []string{
		"doctor_name ILIKE $1",
		"patient_name ILIKE $2",
		"department ILIKE $3",
		dateTimeText + " ILIKE $4",
	}
	args := []any{
		likePattern(q.DoctorName),
		likePattern(q.PatientName),
		likePattern(q.Department),
		likePattern(q.DateTime),
	}

	return strings.Join(conds, " AND "), args
}

func orderBy(q schedule.ListQuery) string {
	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = sortColumns[schedule.SortByDateTime]
	}

	dir := "DESC"
	if q.SortOrder == schedule.SortAsc {
		dir = "ASC"
	}

	return col + " " + dir + ", seq ASC"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
