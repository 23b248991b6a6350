package scheduler

import (
	"time"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

// consecutiveBlocked 连班检查：回看本 schedule 内紧邻的前
// ConsecutiveLookbackDays 天，统计与目标班次同类型的排班数，
// 达到 MaxConsecutiveShifts 阈值则拦截
//
// 默认配置下（回看 2 天、阈值 6）这个检查拦不住任何人，见 Policy 的说明
func (s *Scheduler) consecutiveBlocked(employeeID int64, date time.Time, target domain.ShiftName) bool {
	sameShiftCount := 0

	for i := 1; i <= s.policy.ConsecutiveLookbackDays; i++ {
		prev := date.AddDate(0, 0, -i)
		a, exists := s.byEmployeeDate[assignmentKey(employeeID, prev)]
		if !exists {
			continue
		}
		if a.Shift == target {
			sameShiftCount++
		}
	}

	return sameShiftCount >= s.policy.MaxConsecutiveShifts
}
