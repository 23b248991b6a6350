package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

func scheduledFor(employeeIDs ...int64) []*domain.ShiftAssignment {
	assignments := make([]*domain.ShiftAssignment, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		assignments = append(assignments, &domain.ShiftAssignment{EmployeeID: id, Shift: domain.ShiftDay})
	}
	return assignments
}

func TestDetectAbsentees(t *testing.T) {
	tests := []struct {
		name       string
		scheduled  []*domain.ShiftAssignment
		presentIDs []int64
		want       []int64
	}{
		{
			name:       "全员在岗，无缺勤",
			scheduled:  scheduledFor(1, 2, 3),
			presentIDs: []int64{1, 2, 3},
			want:       nil,
		},
		{
			name:       "部分缺勤，保持排班顺序",
			scheduled:  scheduledFor(1, 2, 3),
			presentIDs: []int64{1},
			want:       []int64{2, 3},
		},
		{
			name:       "同一员工多条排班只算一次",
			scheduled:  scheduledFor(1, 1, 2),
			presentIDs: nil,
			want:       []int64{1, 2},
		},
		{
			name:       "没有排班就没有缺勤",
			scheduled:  nil,
			presentIDs: []int64{1, 2},
			want:       nil,
		},
		{
			name:       "在岗但没排班的员工不影响结果",
			scheduled:  scheduledFor(1),
			presentIDs: []int64{2, 3},
			want:       []int64{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectAbsentees(tt.scheduled, tt.presentIDs)
			if len(got) != len(tt.want) {
				t.Fatalf("DetectAbsentees() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("第 %d 位是 %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestComposeAbsenceMessage(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	absentees := []*domain.Employee{
		{ID: 1, FullName: "王伟", EmployeeNumber: "EMP000001"},
		{ID: 2, FullName: "李芳", EmployeeNumber: "EMP000002"},
	}
	shiftByEmployee := map[int64]domain.ShiftName{
		1: domain.ShiftEvening,
	}

	message, lines := ComposeAbsenceMessage(date, absentees, shiftByEmployee)

	if len(lines) != 2 {
		t.Fatalf("每个缺勤员工应有一行, got %d 行", len(lines))
	}
	if !strings.Contains(lines[0], "王伟") || !strings.Contains(lines[0], "晚班") {
		t.Errorf("第一行应包含姓名和班次, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "无排班记录") {
		t.Errorf("没有班次信息的员工应标注无排班记录, got %q", lines[1])
	}
	if !strings.HasPrefix(message, "2024-01-15 缺勤员工名单：") {
		t.Errorf("汇总消息应以日期开头, got %q", message)
	}
	for _, line := range lines {
		if !strings.Contains(message, line) {
			t.Errorf("汇总消息应包含行 %q", line)
		}
	}
}

func TestComposeAbsenceMessage_Empty(t *testing.T) {
	message, lines := ComposeAbsenceMessage(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), nil, nil)
	if len(lines) != 0 {
		t.Errorf("没有缺勤员工时不应有明细行, got %d", len(lines))
	}
	if !strings.Contains(message, "2024-01-15") {
		t.Errorf("消息仍应包含日期, got %q", message)
	}
}
