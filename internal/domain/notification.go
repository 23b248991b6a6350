package domain

import "time"

// ManagerNotification 发给部门经理的站内通知
type ManagerNotification struct {
	ID        int64     `json:"id"`
	ManagerID int64     `json:"managerID"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// EmployeeNotification 发给员工的站内通知
type EmployeeNotification struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeID"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NotificationMessage 投递到消息队列的通知，由 mail worker 消费
type NotificationMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type AbsenceReportMailData struct {
	FullName     string   `json:"fullName"`
	DivisionName string   `json:"divisionName"`
	Date         string   `json:"date"`
	Lines        []string `json:"lines"` // 每个缺勤员工一行
}

type SchedulePublishedMailData struct {
	FullName      string   `json:"fullName"`
	WeekStartDate string   `json:"weekStartDate"`
	Lines         []string `json:"lines"` // 该员工本周的每个班次一行
}

type AssignmentChangedMailData struct {
	FullName  string `json:"fullName"`
	Date      string `json:"date"`
	ShiftName string `json:"shiftName"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}
