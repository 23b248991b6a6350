package domain

import "time"

// ShiftName 班次标识，取值为一个封闭集合
type ShiftName string

const (
	ShiftDay          ShiftName = "A" // 早班 09:00 - 17:00
	ShiftEvening      ShiftName = "B" // 晚班 17:00 - 次日 01:00
	ShiftNight        ShiftName = "C" // 夜班 01:00 - 09:00
	ShiftNoPreference ShiftName = "N" // 无偏好，仅作为员工偏好出现，不参与分配
)

// AssignableShifts 参与排班分配的班次（不含 N）
var AssignableShifts = []ShiftName{ShiftDay, ShiftEvening, ShiftNight}

func (n ShiftName) DisplayName() string {
	switch n {
	case ShiftDay:
		return "早班"
	case ShiftEvening:
		return "晚班"
	case ShiftNight:
		return "夜班"
	case ShiftNoPreference:
		return "无偏好"
	default:
		return string(n)
	}
}

func (n ShiftName) IsValid() bool {
	return n == ShiftDay || n == ShiftEvening || n == ShiftNight || n == ShiftNoPreference
}

// ShiftType 班次定义，运行期只读
type ShiftType struct {
	Name                 ShiftName `json:"name"`
	StartTime            string    `json:"startTime"` // HH:MM:SS
	EndTime              string    `json:"endTime"`   // HH:MM:SS，可能小于开始时间（跨天）
	LateThresholdMinutes int       `json:"lateThresholdMinutes"`
	EarlyLeaveMinutes    int       `json:"earlyLeaveMinutes"`
	DurationHours        int       `json:"durationHours"`
}

// ShiftCatalog 班次目录，进程启动时构造一次，此后只读
type ShiftCatalog struct {
	shifts map[ShiftName]*ShiftType
}

func NewShiftCatalog(shifts ...*ShiftType) *ShiftCatalog {
	c := &ShiftCatalog{shifts: make(map[ShiftName]*ShiftType, len(shifts))}
	for _, s := range shifts {
		c.shifts[s.Name] = s
	}
	return c
}

func (c *ShiftCatalog) Get(name ShiftName) (*ShiftType, bool) {
	s, ok := c.shifts[name]
	return s, ok
}

// Hours 计算名义工作时长（小时），结束时间小于开始时间时视为跨天
func (s *ShiftType) Hours() float64 {
	return HoursBetween(s.StartTime, s.EndTime)
}

// HoursBetween 计算 HH:MM:SS 起止之间的小时数，end < start 时按次日处理
func HoursBetween(startTime, endTime string) float64 {
	start, err := time.Parse("15:04:05", startTime)
	if err != nil {
		return 0
	}
	end, err := time.Parse("15:04:05", endTime)
	if err != nil {
		return 0
	}
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return end.Sub(start).Hours()
}
