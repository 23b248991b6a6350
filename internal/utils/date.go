package utils

import "time"

// DateOf 取 t 在其所在时区的日历日期，归一化成 UTC 零点，
// 可以直接和 time.Parse("2006-01-02", ...) 的结果比较。
// 直接 Truncate(24h) 截的是 UTC 日界，东八区凌晨会差一天
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
