package domain

import "time"

// WeekSchedule 某个部门群（division）从周一开始的 7 天排班计划
// (division_id, week_start_date) 唯一
type WeekSchedule struct {
	ID            int64     `json:"id"`
	DivisionID    int64     `json:"divisionID"`
	WeekStartDate time.Time `json:"weekStartDate"` // 必须是周一，由调用方保证
	WeekEndDate   time.Time `json:"weekEndDate"`
	CreatedBy     int64     `json:"createdBy"` // manager ID
	CreatedAt     time.Time `json:"createdAt"`
	Version       int32     `json:"-"`
}

// RequirementKey 需求单元格的键：按 (部门, 班次) 指定人数
// 不要用 "dept_1_shift_A" 这种字符串拼接，那是表单层的序列化细节
type RequirementKey struct {
	DepartmentID int64
	Shift        ShiftName
}

// RequirementMap 一周的需求模板，与具体日期无关
type RequirementMap map[RequirementKey]int32

// DepartmentRequirement 持久化后的需求行，(schedule, department, shift) 唯一
// 数量为 0 的单元格不落库
type DepartmentRequirement struct {
	ID            int64     `json:"id"`
	ScheduleID    int64     `json:"scheduleID"`
	DepartmentID  int64     `json:"departmentID"`
	Shift         ShiftName `json:"shift"`
	RequiredCount int32     `json:"requiredCount"`
}

// ShiftAssignment 一名员工某一天的排班，(employee, date) 在同一 schedule 内唯一
type ShiftAssignment struct {
	ID         int64     `json:"id"`
	ScheduleID int64     `json:"scheduleID"`
	EmployeeID int64     `json:"employeeID"`
	Date       time.Time `json:"date"`
	Shift      ShiftName `json:"shift"`
	StartTime  string    `json:"startTime"` // HH:MM:SS，手工调整后可能与班次名义时间不同
	EndTime    string    `json:"endTime"`
	// IsManualOverride 区分算法生成与人工拖拽修改
	IsManualOverride bool      `json:"isManualOverride"`
	CreatedAt        time.Time `json:"createdAt"`
	Version          int32     `json:"-"`
}

// WorkingHours 该排班的实际时长（小时），结束时间小于开始时间时按跨天计算
func (a *ShiftAssignment) WorkingHours() float64 {
	return HoursBetween(a.StartTime, a.EndTime)
}
