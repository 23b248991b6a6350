package utils

import (
	"testing"
	"time"
)

func TestDateOf(t *testing.T) {
	// 东八区 1 月 16 日凌晨 1 点在 UTC 还是 1 月 15 日，
	// 以本地日历日期为准
	cst := time.FixedZone("CST", 8*3600)
	local := time.Date(2024, 1, 16, 1, 0, 0, 0, cst)

	got := DateOf(local)
	want := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOf() = %v, want %v", got, want)
	}

	parsed, err := time.Parse("2006-01-02", "2024-01-16")
	if err != nil {
		t.Fatalf("解析日期失败: %v", err)
	}
	if !got.Equal(parsed) {
		t.Errorf("DateOf() 的结果应能与解析出的日期直接比较, got %v", got)
	}
}

func TestDateOf_UTCUnchanged(t *testing.T) {
	utc := time.Date(2024, 1, 15, 23, 59, 59, 0, time.UTC)
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := DateOf(utc); !got.Equal(want) {
		t.Errorf("DateOf() = %v, want %v", got, want)
	}
}
