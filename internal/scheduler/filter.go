package scheduler

import "github.com/hrms-dev/attendance-manager/backend/internal/domain"

// filterByWeeklyHours 去掉分配该班次后周工时会超过个人上限的候选人
// 工时只统计本 schedule 内已提交的排班：新的一周从零开始计
func (s *Scheduler) filterByWeeklyHours(candidates []*domain.Employee, shiftHours float64) []*domain.Employee {
	var valid []*domain.Employee
	for _, emp := range candidates {
		if s.hoursByEmployee[emp.ID]+shiftHours <= float64(emp.MaxWeeklyHours) {
			valid = append(valid, emp)
		}
	}
	return valid
}

// WeeklyHours 某员工在本次生成中已累计的工时（小时）
func (s *Scheduler) WeeklyHours(employeeID int64) float64 {
	return s.hoursByEmployee[employeeID]
}
