package utils

import (
	"strings"
	"testing"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

func TestGenerateRandomEmployeeNumber(t *testing.T) {
	for i := 0; i < 20; i++ {
		number := GenerateRandomEmployeeNumber()
		if len(number) != 9 || !strings.HasPrefix(number, "EMP") {
			t.Fatalf("工号应为 EMP + 6 位数字, got %q", number)
		}
		for _, c := range number[3:] {
			if c < '0' || c > '9' {
				t.Fatalf("工号后缀应全是数字, got %q", number)
			}
		}
	}
}

func TestGenerateUsernameFromChineseName(t *testing.T) {
	username := GenerateUsernameFromChineseName("王伟")
	if username == "" {
		t.Fatal("用户名不应为空")
	}
	for _, c := range username {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			t.Fatalf("用户名应只含小写拼音和数字, got %q", username)
		}
	}
}

func TestGenerateRandomShiftPreference(t *testing.T) {
	validNames := map[domain.ShiftName]bool{
		domain.ShiftDay:          true,
		domain.ShiftEvening:      true,
		domain.ShiftNight:        true,
		domain.ShiftNoPreference: true,
	}

	for i := 0; i < 50; i++ {
		pref := GenerateRandomShiftPreference()
		if pref == nil {
			// 允许不填偏好
			continue
		}
		if !validNames[*pref] {
			t.Fatalf("偏好应是合法班次, got %q", *pref)
		}
	}
}
