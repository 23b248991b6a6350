package domain

import "time"

type Division struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

type Department struct {
	ID         int64     `json:"id"`
	DivisionID int64     `json:"divisionID"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}

// Employee 员工目录中的员工信息，排班核心只消费不拥有
type Employee struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"userID"`
	EmployeeNumber string `json:"employeeNumber"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	DivisionID     int64  `json:"divisionID"`
	DepartmentID   int64  `json:"departmentID"`
	// ShiftPreference 为 nil 表示员工没有填写偏好，与显式的"无偏好"（N）不同
	ShiftPreference    *ShiftName `json:"shiftPreference"`
	MaxWeeklyHours     int        `json:"maxWeeklyHours"`
	TotalOvertimeHours float64    `json:"totalOvertimeHours"` // 排班本身不使用，随员工档案携带
	OvertimeRemaining  float64    `json:"overtimeRemaining"`
	CreatedAt          time.Time  `json:"createdAt"`
	Version            int32      `json:"-"`
}

type Manager struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userID"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	DivisionID int64     `json:"divisionID"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}
