package utils

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

// ValidateWeekStartDate 排班周固定从周一开始
func ValidateWeekStartDate(weekStartDate time.Time) error {
	if weekStartDate.Weekday() != time.Monday {
		return errors.New("周起始日期必须是周一")
	}
	return nil
}

// ValidateRequirements 检查需求模板里的每个单元格：
// 班次必须是可分配班次（不能填无偏好），部门必须属于当前部门群
func ValidateRequirements(requirements domain.RequirementMap, departments []*domain.Department) error {
	departmentIDs := make(map[int64]bool, len(departments))
	for _, dept := range departments {
		departmentIDs[dept.ID] = true
	}

	for key, count := range requirements {
		if !slices.Contains(domain.AssignableShifts, key.Shift) {
			return fmt.Errorf("班次 %s 不能作为需求班次", key.Shift)
		}
		if !departmentIDs[key.DepartmentID] {
			return fmt.Errorf("部门 %d 不属于当前部门群", key.DepartmentID)
		}
		if count < 0 {
			return fmt.Errorf("部门 %d 的%s需求人数不能为负数", key.DepartmentID, key.Shift.DisplayName())
		}
	}

	return nil
}
