package utils

import (
	"testing"
	"time"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

func TestValidateWeekStartDate(t *testing.T) {
	monday := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if err := ValidateWeekStartDate(monday); err != nil {
		t.Errorf("周一应通过校验, got %v", err)
	}

	tuesday := monday.AddDate(0, 0, 1)
	if err := ValidateWeekStartDate(tuesday); err == nil {
		t.Error("周二应校验失败")
	}
}

func TestValidateRequirements(t *testing.T) {
	departments := []*domain.Department{
		{ID: 1, DivisionID: 1, Name: "销售部"},
		{ID: 2, DivisionID: 1, Name: "客服部"},
	}

	tests := []struct {
		name         string
		requirements domain.RequirementMap
		wantErr      bool
	}{
		{
			name: "合法的需求",
			requirements: domain.RequirementMap{
				{DepartmentID: 1, Shift: domain.ShiftDay}:     2,
				{DepartmentID: 2, Shift: domain.ShiftEvening}: 1,
			},
			wantErr: false,
		},
		{
			name: "无偏好不能作为需求班次",
			requirements: domain.RequirementMap{
				{DepartmentID: 1, Shift: domain.ShiftNoPreference}: 1,
			},
			wantErr: true,
		},
		{
			name: "非法班次",
			requirements: domain.RequirementMap{
				{DepartmentID: 1, Shift: domain.ShiftName("X")}: 1,
			},
			wantErr: true,
		},
		{
			name: "其他部门群的部门",
			requirements: domain.RequirementMap{
				{DepartmentID: 99, Shift: domain.ShiftDay}: 1,
			},
			wantErr: true,
		},
		{
			name: "负数人数",
			requirements: domain.RequirementMap{
				{DepartmentID: 1, Shift: domain.ShiftDay}: -1,
			},
			wantErr: true,
		},
		{
			name:         "空需求",
			requirements: domain.RequirementMap{},
			wantErr:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequirements(tt.requirements, departments)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequirements() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
