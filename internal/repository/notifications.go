package repository

import (
	"context"
	"time"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

func (r *Repository) CreateManagerNotification(n *domain.ManagerNotification) error {
	query := `
		INSERT INTO manager_notifications (manager_id, message)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, n.ManagerID, n.Message).Scan(&n.ID, &n.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CreateEmployeeNotification(n *domain.EmployeeNotification) error {
	query := `
		INSERT INTO employee_notifications (employee_id, message)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, n.EmployeeID, n.Message).Scan(&n.ID, &n.CreatedAt); err != nil {
		return err
	}

	return nil
}
