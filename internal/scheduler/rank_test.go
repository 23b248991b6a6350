package scheduler

import (
	"testing"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

func TestRankCandidates(t *testing.T) {
	tests := []struct {
		name      string
		pool      []*domain.Employee
		target    domain.ShiftName
		wantOrder []int64
	}{
		{
			name: "偏好一致的排最前",
			pool: []*domain.Employee{
				testEmployee(1, 1, prefOf(domain.ShiftEvening)),
				testEmployee(2, 1, prefOf(domain.ShiftDay)),
			},
			target:    domain.ShiftDay,
			wantOrder: []int64{2, 1},
		},
		{
			name: "显式无偏好的排第二档",
			pool: []*domain.Employee{
				testEmployee(1, 1, prefOf(domain.ShiftEvening)),
				testEmployee(2, 1, prefOf(domain.ShiftNoPreference)),
				testEmployee(3, 1, prefOf(domain.ShiftDay)),
			},
			target:    domain.ShiftDay,
			wantOrder: []int64{3, 2, 1},
		},
		{
			name: "没填偏好的归入第三档",
			pool: []*domain.Employee{
				testEmployee(1, 1, nil),
				testEmployee(2, 1, prefOf(domain.ShiftNoPreference)),
			},
			target:    domain.ShiftDay,
			wantOrder: []int64{2, 1},
		},
		{
			name: "档内保持传入顺序",
			pool: []*domain.Employee{
				testEmployee(1, 1, prefOf(domain.ShiftNight)),
				testEmployee(2, 1, prefOf(domain.ShiftNight)),
				testEmployee(3, 1, prefOf(domain.ShiftNight)),
			},
			target:    domain.ShiftNight,
			wantOrder: []int64{1, 2, 3},
		},
		{
			name:      "空候选池",
			pool:      nil,
			target:    domain.ShiftDay,
			wantOrder: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := rankCandidates(tt.pool, tt.target)
			if len(ranked) != len(tt.wantOrder) {
				t.Fatalf("rankCandidates() 返回 %d 人, want %d", len(ranked), len(tt.wantOrder))
			}
			for i, emp := range ranked {
				if emp.ID != tt.wantOrder[i] {
					t.Errorf("第 %d 位是员工 %d, want %d", i, emp.ID, tt.wantOrder[i])
				}
			}
		})
	}
}
