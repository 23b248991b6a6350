package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

func (r *Repository) GetScheduleByDivisionAndWeek(divisionID int64, weekStartDate time.Time) (*domain.WeekSchedule, error) {
	query := `
		SELECT id, week_end_date, created_by, created_at, version
		FROM week_schedules
		WHERE division_id = $1 AND week_start_date = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	schedule := &domain.WeekSchedule{
		DivisionID:    divisionID,
		WeekStartDate: weekStartDate,
	}

	dst := []any{&schedule.ID, &schedule.WeekEndDate, &schedule.CreatedBy, &schedule.CreatedAt, &schedule.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, divisionID, weekStartDate).Scan(dst...); err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *Repository) GetScheduleByID(id int64) (*domain.WeekSchedule, error) {
	query := `
		SELECT division_id, week_start_date, week_end_date, created_by, created_at, version
		FROM week_schedules
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	schedule := &domain.WeekSchedule{
		ID: id,
	}

	dst := []any{&schedule.DivisionID, &schedule.WeekStartDate, &schedule.WeekEndDate, &schedule.CreatedBy, &schedule.CreatedAt, &schedule.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *Repository) GetSchedulesByDivision(divisionID int64) ([]*domain.WeekSchedule, error) {
	query := `
		SELECT id, division_id, week_start_date, week_end_date, created_by, created_at, version
		FROM week_schedules
		WHERE division_id = $1
		ORDER BY week_start_date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*domain.WeekSchedule, 0)
	for rows.Next() {
		s := &domain.WeekSchedule{}
		dst := []any{&s.ID, &s.DivisionID, &s.WeekStartDate, &s.WeekEndDate, &s.CreatedBy, &s.CreatedAt, &s.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// SaveSchedule 在一个事务内完成整周排班的落库：
// get-or-create 排班表；已存在且 regenerate 为假时返回 ErrScheduleExists，
// 不做任何修改；regenerate 为真时先删掉全部子行（需求和排班，包括
// 人工调整过的行）再重建。需求里数量为 0 的单元格不落库
func (r *Repository) SaveSchedule(
	schedule *domain.WeekSchedule,
	requirements domain.RequirementMap,
	assignments []*domain.ShiftAssignment,
	regenerate bool,
) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 行锁住已存在的排班表，让同一个 (division, week) 的并发生成串行化
	query := `
		SELECT id, version FROM week_schedules
		WHERE division_id = $1 AND week_start_date = $2
		FOR UPDATE
	`
	err = tx.QueryRowContext(ctx, query, schedule.DivisionID, schedule.WeekStartDate).Scan(&schedule.ID, &schedule.Version)
	switch {
	case err == nil:
		if !regenerate {
			return ErrScheduleExists
		}

		// 重新生成：清空旧的需求和排班
		if _, err := tx.ExecContext(ctx, `DELETE FROM shift_assignments WHERE schedule_id = $1`, schedule.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM department_requirements WHERE schedule_id = $1`, schedule.ID); err != nil {
			return err
		}

		query = `
			UPDATE week_schedules
			SET created_by = $1, version = version + 1
			WHERE id = $2
			RETURNING created_at, version
		`
		if err := tx.QueryRowContext(ctx, query, schedule.CreatedBy, schedule.ID).Scan(&schedule.CreatedAt, &schedule.Version); err != nil {
			return err
		}
	case errors.Is(err, sql.ErrNoRows):
		query = `
			INSERT INTO week_schedules (division_id, week_start_date, week_end_date, created_by)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, version
		`
		params := []any{schedule.DivisionID, schedule.WeekStartDate, schedule.WeekEndDate, schedule.CreatedBy}
		if err := tx.QueryRowContext(ctx, query, params...).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.Version); err != nil {
			return err
		}
	default:
		return err
	}

	for key, count := range requirements {
		if count <= 0 {
			continue
		}
		query = `
			INSERT INTO department_requirements (schedule_id, department_id, shift, required_count)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, query, schedule.ID, key.DepartmentID, key.Shift, count); err != nil {
			return err
		}
	}

	for _, a := range assignments {
		a.ScheduleID = schedule.ID
		query = `
			INSERT INTO shift_assignments (schedule_id, employee_id, date, shift, start_time, end_time, is_manual_override)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, version
		`
		params := []any{a.ScheduleID, a.EmployeeID, a.Date, a.Shift, a.StartTime, a.EndTime, a.IsManualOverride}
		if err := tx.QueryRowContext(ctx, query, params...).Scan(&a.ID, &a.CreatedAt, &a.Version); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetRequirementsByScheduleID(scheduleID int64) ([]*domain.DepartmentRequirement, error) {
	query := `
		SELECT id, schedule_id, department_id, shift, required_count
		FROM department_requirements
		WHERE schedule_id = $1
		ORDER BY department_id, shift
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requirements := make([]*domain.DepartmentRequirement, 0)
	for rows.Next() {
		req := &domain.DepartmentRequirement{}
		dst := []any{&req.ID, &req.ScheduleID, &req.DepartmentID, &req.Shift, &req.RequiredCount}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		requirements = append(requirements, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requirements, nil
}

func scanAssignments(rows *sql.Rows) ([]*domain.ShiftAssignment, error) {
	assignments := make([]*domain.ShiftAssignment, 0)
	for rows.Next() {
		a := &domain.ShiftAssignment{}
		dst := []any{&a.ID, &a.ScheduleID, &a.EmployeeID, &a.Date, &a.Shift, &a.StartTime, &a.EndTime, &a.IsManualOverride, &a.CreatedAt, &a.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

const assignmentColumns = `
	a.id, a.schedule_id, a.employee_id, a.date, a.shift,
	a.start_time, a.end_time, a.is_manual_override, a.created_at, a.version
`

func (r *Repository) GetAssignmentsByScheduleID(scheduleID int64) ([]*domain.ShiftAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM shift_assignments a
		WHERE a.schedule_id = $1
		ORDER BY a.date, a.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// GetAssignmentsByDivisionAndDate 某天某 division 的全部排班（跨 schedule 按日期查）
// 缺勤检测用它得到"应到"名单
func (r *Repository) GetAssignmentsByDivisionAndDate(divisionID int64, date time.Time) ([]*domain.ShiftAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM shift_assignments a
		JOIN employees e ON e.id = a.employee_id
		WHERE e.division_id = $1 AND a.date = $2
		ORDER BY a.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, divisionID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// GetAssignmentsByEmployeeAndDateRange 员工某段日期内的排班，按日期升序
func (r *Repository) GetAssignmentsByEmployeeAndDateRange(employeeID int64, startDate, endDate time.Time) ([]*domain.ShiftAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM shift_assignments a
		WHERE a.employee_id = $1 AND a.date >= $2 AND a.date <= $3
		ORDER BY a.date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignments(rows)
}

func (r *Repository) GetAssignmentByID(id int64) (*domain.ShiftAssignment, error) {
	query := `
		SELECT schedule_id, employee_id, date, shift, start_time, end_time, is_manual_override, created_at, version
		FROM shift_assignments
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	a := &domain.ShiftAssignment{
		ID: id,
	}

	dst := []any{&a.ScheduleID, &a.EmployeeID, &a.Date, &a.Shift, &a.StartTime, &a.EndTime, &a.IsManualOverride, &a.CreatedAt, &a.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return a, nil
}

// UpdateAssignment 人工调整单条排班（日历拖拽），乐观锁防止并发覆盖
func (r *Repository) UpdateAssignment(a *domain.ShiftAssignment) error {
	query := `
		UPDATE shift_assignments
		SET
			employee_id = $1,
			date = $2,
			start_time = $3,
			end_time = $4,
			is_manual_override = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{a.EmployeeID, a.Date, a.StartTime, a.EndTime, a.IsManualOverride, a.ID, a.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&a.Version); err != nil {
		return err
	}

	return nil
}
