package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

func (r *Repository) GetAllDivisions() ([]*domain.Division, error) {
	query := `
		SELECT id, name, created_at, version FROM divisions ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	divisions := make([]*domain.Division, 0)
	for rows.Next() {
		division := &domain.Division{}
		if err := rows.Scan(&division.ID, &division.Name, &division.CreatedAt, &division.Version); err != nil {
			return nil, err
		}
		divisions = append(divisions, division)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return divisions, nil
}

func (r *Repository) GetDivisionByID(id int64) (*domain.Division, error) {
	query := `
		SELECT name, created_at, version FROM divisions WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	division := &domain.Division{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&division.Name, &division.CreatedAt, &division.Version); err != nil {
		return nil, err
	}

	return division, nil
}

func (r *Repository) GetDepartmentsByDivision(divisionID int64) ([]*domain.Department, error) {
	query := `
		SELECT id, division_id, name, created_at, version
		FROM departments WHERE division_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]*domain.Department, 0)
	for rows.Next() {
		dept := &domain.Department{}
		if err := rows.Scan(&dept.ID, &dept.DivisionID, &dept.Name, &dept.CreatedAt, &dept.Version); err != nil {
			return nil, err
		}
		departments = append(departments, dept)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

func scanEmployee(rows *sql.Rows) (*domain.Employee, error) {
	emp := &domain.Employee{}
	var pref sql.NullString

	dst := []any{
		&emp.ID,
		&emp.UserID,
		&emp.EmployeeNumber,
		&emp.FullName,
		&emp.Email,
		&emp.DivisionID,
		&emp.DepartmentID,
		&pref,
		&emp.MaxWeeklyHours,
		&emp.TotalOvertimeHours,
		&emp.OvertimeRemaining,
		&emp.CreatedAt,
		&emp.Version,
	}
	if err := rows.Scan(dst...); err != nil {
		return nil, err
	}

	if pref.Valid {
		name := domain.ShiftName(pref.String)
		emp.ShiftPreference = &name
	}

	return emp, nil
}

const employeeColumns = `
	e.id, e.user_id, e.employee_number, u.full_name, u.email,
	e.division_id, e.department_id, e.shift_preference,
	e.max_weekly_hours, e.total_overtime_hours, e.overtime_remaining,
	e.created_at, e.version
`

// GetEmployeesByDivision 返回某个 division 的所有在职员工，按 id 升序
// 这个顺序就是排班候选的基准顺序，档内排序不会打乱它
func (r *Repository) GetEmployeesByDivision(divisionID int64) ([]*domain.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		JOIN users u ON u.id = e.user_id
		WHERE e.division_id = $1 AND u.is_active = TRUE
		ORDER BY e.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		JOIN users u ON u.id = e.user_id
		WHERE e.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}

	return scanEmployee(rows)
}

func (r *Repository) GetManagersByDivision(divisionID int64) ([]*domain.Manager, error) {
	query := `
		SELECT m.id, m.user_id, u.full_name, u.email, m.division_id, m.created_at, m.version
		FROM managers m
		JOIN users u ON u.id = m.user_id
		WHERE m.division_id = $1 AND u.is_active = TRUE
		ORDER BY m.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	managers := make([]*domain.Manager, 0)
	for rows.Next() {
		m := &domain.Manager{}
		dst := []any{&m.ID, &m.UserID, &m.FullName, &m.Email, &m.DivisionID, &m.CreatedAt, &m.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		managers = append(managers, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return managers, nil
}

func (r *Repository) CreateDivision(division *domain.Division) error {
	query := `
		INSERT INTO divisions (name)
		VALUES ($1)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, division.Name).Scan(&division.ID, &division.CreatedAt, &division.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CreateDepartment(dept *domain.Department) error {
	query := `
		INSERT INTO departments (division_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, dept.DivisionID, dept.Name).Scan(&dept.ID, &dept.CreatedAt, &dept.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CreateEmployee(emp *domain.Employee) error {
	query := `
		INSERT INTO employees (user_id, employee_number, division_id, department_id, shift_preference, max_weekly_hours)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, total_overtime_hours, overtime_remaining, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var pref sql.NullString
	if emp.ShiftPreference != nil {
		pref = sql.NullString{String: string(*emp.ShiftPreference), Valid: true}
	}

	params := []any{emp.UserID, emp.EmployeeNumber, emp.DivisionID, emp.DepartmentID, pref, emp.MaxWeeklyHours}
	dst := []any{&emp.ID, &emp.TotalOvertimeHours, &emp.OvertimeRemaining, &emp.CreatedAt, &emp.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CreateManager(m *domain.Manager) error {
	query := `
		INSERT INTO managers (user_id, division_id)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, m.UserID, m.DivisionID).Scan(&m.ID, &m.CreatedAt, &m.Version); err != nil {
		return err
	}

	return nil
}

// GetManagerByUserID 根据登录用户找到对应的经理记录
func (r *Repository) GetManagerByUserID(userID int64) (*domain.Manager, error) {
	query := `
		SELECT m.id, u.full_name, u.email, m.division_id, m.created_at, m.version
		FROM managers m
		JOIN users u ON u.id = m.user_id
		WHERE m.user_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	m := &domain.Manager{
		UserID: userID,
	}

	dst := []any{&m.ID, &m.FullName, &m.Email, &m.DivisionID, &m.CreatedAt, &m.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, userID).Scan(dst...); err != nil {
		return nil, err
	}

	return m, nil
}
