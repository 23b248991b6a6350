package domain

import "testing"

func TestHoursBetween(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		endTime   string
		want      float64
	}{
		{name: "早班 8 小时", startTime: "09:00:00", endTime: "17:00:00", want: 8},
		{name: "晚班跨天仍是 8 小时", startTime: "17:00:00", endTime: "01:00:00", want: 8},
		{name: "夜班 8 小时", startTime: "01:00:00", endTime: "09:00:00", want: 8},
		{name: "半小时", startTime: "09:00:00", endTime: "09:30:00", want: 0.5},
		{name: "起止相同视为整天", startTime: "09:00:00", endTime: "09:00:00", want: 24},
		{name: "非法时间返回 0", startTime: "morning", endTime: "17:00:00", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HoursBetween(tt.startTime, tt.endTime); got != tt.want {
				t.Errorf("HoursBetween(%q, %q) = %v, want %v", tt.startTime, tt.endTime, got, tt.want)
			}
		})
	}
}

func TestShiftAssignmentWorkingHours(t *testing.T) {
	a := &ShiftAssignment{StartTime: "17:00:00", EndTime: "01:00:00"}
	if got := a.WorkingHours(); got != 8 {
		t.Errorf("WorkingHours() = %v, want 8", got)
	}
}

func TestShiftNameIsValid(t *testing.T) {
	for _, name := range []ShiftName{ShiftDay, ShiftEvening, ShiftNight, ShiftNoPreference} {
		if !name.IsValid() {
			t.Errorf("%s 应该是合法班次", name)
		}
	}
	if ShiftName("X").IsValid() {
		t.Error("X 不应是合法班次")
	}
}
