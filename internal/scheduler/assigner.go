package scheduler

import (
	"fmt"
	"time"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

// assignDay 生成某一天的排班：遍历每个 (部门, 班次) 需求单元格，
// 依次做可用性过滤、偏好排序、周工时过滤，再按序取满需求人数
func (s *Scheduler) assignDay(date time.Time) error {
	// 当天已被分配的员工，跨部门共享：一人一天最多一个班
	assignedToday := make(map[int64]bool)

	for _, dept := range s.departments {
		for _, shiftName := range domain.AssignableShifts {
			requiredCount := s.requirements[domain.RequirementKey{DepartmentID: dept.ID, Shift: shiftName}]
			if requiredCount <= 0 {
				// 需求为 0 的单元格不做任何自动分配
				continue
			}

			shift, exists := s.catalog.Get(shiftName)
			if !exists {
				return fmt.Errorf("班次 %s 不存在于班次目录中", shiftName)
			}

			// 可用性：排除已批准请假的，再排除当天已在别处排班的
			var candidates []*domain.Employee
			for _, emp := range s.availableEmployees(dept.ID, date) {
				if assignedToday[emp.ID] {
					continue
				}
				candidates = append(candidates, emp)
			}

			ranked := rankCandidates(candidates, shiftName)
			valid := s.filterByWeeklyHours(ranked, shift.Hours())

			// 按序截取需求人数。连班检查拦下的人直接跳过，
			// 不从截断点之后补位：当天填不满就是填不满
			take := int(requiredCount)
			if take > len(valid) {
				take = len(valid)
			}
			for _, emp := range valid[:take] {
				if s.consecutiveBlocked(emp.ID, date, shiftName) {
					continue
				}
				s.commit(emp, date, shift)
				assignedToday[emp.ID] = true
			}
		}
	}

	return nil
}
