package scheduler

import (
	"testing"
	"time"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

func commitShift(s *Scheduler, employeeID int64, date time.Time, shift domain.ShiftName) {
	a := &domain.ShiftAssignment{
		EmployeeID: employeeID,
		Date:       date,
		Shift:      shift,
	}
	s.assignments = append(s.assignments, a)
	s.byEmployeeDate[assignmentKey(employeeID, date)] = a
}

func TestConsecutiveBlocked(t *testing.T) {
	tests := []struct {
		name         string
		lookbackDays int
		maxShifts    int
		priorShifts  []domain.ShiftName // 从前一天往前数
		target       domain.ShiftName
		wantBlocked  bool
	}{
		{
			name:         "默认配置下回看窗口小于阈值，拦不住任何人",
			lookbackDays: 2,
			maxShifts:    6,
			priorShifts:  []domain.ShiftName{domain.ShiftDay, domain.ShiftDay},
			target:       domain.ShiftDay,
			wantBlocked:  false,
		},
		{
			name:         "窗口内同班次数达到阈值时拦截",
			lookbackDays: 6,
			maxShifts:    2,
			priorShifts:  []domain.ShiftName{domain.ShiftDay, domain.ShiftDay},
			target:       domain.ShiftDay,
			wantBlocked:  true,
		},
		{
			name:         "不同班次不计入",
			lookbackDays: 6,
			maxShifts:    2,
			priorShifts:  []domain.ShiftName{domain.ShiftEvening, domain.ShiftNight},
			target:       domain.ShiftDay,
			wantBlocked:  false,
		},
		{
			name:         "窗口之外的排班不计入",
			lookbackDays: 1,
			maxShifts:    1,
			priorShifts:  []domain.ShiftName{domain.ShiftEvening, domain.ShiftDay},
			target:       domain.ShiftDay,
			wantBlocked:  false,
		},
		{
			name:         "没有历史排班不拦截",
			lookbackDays: 6,
			maxShifts:    1,
			priorShifts:  nil,
			target:       domain.ShiftDay,
			wantBlocked:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScheduler([]*domain.Employee{testEmployee(1, 1, nil)}, nil, nil)
			s.policy.ConsecutiveLookbackDays = tt.lookbackDays
			s.policy.MaxConsecutiveShifts = tt.maxShifts

			date := testMonday.AddDate(0, 0, 3)
			for i, shift := range tt.priorShifts {
				commitShift(s, 1, date.AddDate(0, 0, -(i+1)), shift)
			}

			if got := s.consecutiveBlocked(1, date, tt.target); got != tt.wantBlocked {
				t.Errorf("consecutiveBlocked() = %v, want %v", got, tt.wantBlocked)
			}
		})
	}
}
