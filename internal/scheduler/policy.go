package scheduler

import (
	"github.com/hrms-dev/attendance-manager/backend/internal/config"
	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

// Policy 排班约束策略，进程启动时从配置构造一次，所有组件共享同一份只读值
//
// 注意：MaxConsecutiveShifts 的默认值（6）大于 ConsecutiveLookbackDays 的
// 默认值（2），此时连班检查永远不会拦截任何人。这是对既有行为的保留，
// 不要在代码里擅自"修正"，要改就改配置（把回看天数调到不小于阈值）。
type Policy struct {
	MaxWeeklyHours          int
	MaxConsecutiveShifts    int
	ConsecutiveLookbackDays int
	MinRestHours            int // 目前不参与判定，仅作为策略值携带
	MaxNightShiftsPerWeek   int // 目前不参与判定
	PreferencePriority      int // 目前不参与判定，排序只看三档偏好
}

func PolicyFromConfig(cfg *config.Config) *Policy {
	return &Policy{
		MaxWeeklyHours:          cfg.Scheduling.MaxWeeklyHours,
		MaxConsecutiveShifts:    cfg.Scheduling.MaxConsecutiveShifts,
		ConsecutiveLookbackDays: cfg.Scheduling.ConsecutiveLookbackDays,
		MinRestHours:            cfg.Scheduling.MinRestHours,
		MaxNightShiftsPerWeek:   cfg.Scheduling.MaxNightShiftsPerWeek,
		PreferencePriority:      cfg.Scheduling.PreferencePriority,
	}
}

// CatalogFromConfig 从配置构造班次目录
func CatalogFromConfig(cfg *config.Config) *domain.ShiftCatalog {
	build := func(name domain.ShiftName, sc config.ShiftTimingConfig) *domain.ShiftType {
		return &domain.ShiftType{
			Name:                 name,
			StartTime:            sc.StartTime,
			EndTime:              sc.EndTime,
			LateThresholdMinutes: sc.LateThresholdMinutes,
			EarlyLeaveMinutes:    sc.EarlyLeaveMinutes,
			DurationHours:        sc.DurationHours,
		}
	}

	return domain.NewShiftCatalog(
		build(domain.ShiftDay, cfg.Shifts.Day),
		build(domain.ShiftEvening, cfg.Shifts.Evening),
		build(domain.ShiftNight, cfg.Shifts.Night),
	)
}
