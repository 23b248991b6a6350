package repository

import (
	"database/sql"
	"errors"

	"github.com/hrms-dev/attendance-manager/backend/internal/config"
)

// ErrScheduleExists 该 (division, week_start_date) 已有排班表且调用方没有要求重新生成
var ErrScheduleExists = errors.New("该周的排班表已存在")

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}
