package repository

import (
	"context"
	"time"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

// GetLeaveRecordsByDivisionAndDateRange 取某个 division 的员工在日期区间内的请假记录
// 审批状态不在这里过滤，可用性判断只认已批准的，由调度核心决定
func (r *Repository) GetLeaveRecordsByDivisionAndDateRange(divisionID int64, startDate, endDate time.Time) ([]*domain.LeaveRecord, error) {
	query := `
		SELECT l.id, l.employee_id, l.date, l.message, l.status, l.created_at
		FROM leave_records l
		JOIN employees e ON e.id = l.employee_id
		WHERE e.division_id = $1 AND l.date >= $2 AND l.date <= $3
		ORDER BY l.date, l.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, divisionID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaves := make([]*domain.LeaveRecord, 0)
	for rows.Next() {
		leave := &domain.LeaveRecord{}
		dst := []any{&leave.ID, &leave.EmployeeID, &leave.Date, &leave.Message, &leave.Status, &leave.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		leaves = append(leaves, leave)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return leaves, nil
}

func (r *Repository) CreateLeaveRecord(leave *domain.LeaveRecord) error {
	query := `
		INSERT INTO leave_records (employee_id, date, message, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{leave.EmployeeID, leave.Date, leave.Message, leave.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&leave.ID, &leave.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CreateAttendance(att *domain.Attendance) error {
	query := `
		INSERT INTO attendances (employee_id, date, check_in, check_out, present, is_late, is_early_departure)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{att.EmployeeID, att.Date, att.CheckIn, att.CheckOut, att.Present, att.IsLate, att.IsEarlyDeparture}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&att.ID, &att.CreatedAt); err != nil {
		return err
	}

	return nil
}

// GetPresentEmployeeIDs 某天某 division 打卡在岗的员工 ID
func (r *Repository) GetPresentEmployeeIDs(divisionID int64, date time.Time) ([]int64, error) {
	query := `
		SELECT a.employee_id
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE e.division_id = $1 AND a.date = $2 AND a.present = TRUE
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, divisionID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
