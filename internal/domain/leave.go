package domain

import "time"

type LeaveStatus int16

const (
	LeaveStatusPending  LeaveStatus = 0
	LeaveStatusApproved LeaveStatus = 1
	LeaveStatusRejected LeaveStatus = -1
)

// LeaveRecord 请假记录，审批流程由外部协作方维护，排班核心只读取
type LeaveRecord struct {
	ID         int64       `json:"id"`
	EmployeeID int64       `json:"employeeID"`
	Date       time.Time   `json:"date"`
	Message    string      `json:"message"`
	Status     LeaveStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Attendance 考勤记录，缺勤检测只关心 present 字段
type Attendance struct {
	ID               int64     `json:"id"`
	EmployeeID       int64     `json:"employeeID"`
	Date             time.Time `json:"date"`
	CheckIn          *string   `json:"checkIn"`  // HH:MM:SS
	CheckOut         *string   `json:"checkOut"` // HH:MM:SS
	Present          bool      `json:"present"`
	IsLate           bool      `json:"isLate"`
	IsEarlyDeparture bool      `json:"isEarlyDeparture"`
	CreatedAt        time.Time `json:"createdAt"`
}
