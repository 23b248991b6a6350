package scheduler

import (
	"testing"
	"time"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

// 2024-01-15 是周一
var testMonday = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func prefOf(name domain.ShiftName) *domain.ShiftName {
	return &name
}

func testPolicy() *Policy {
	return &Policy{
		MaxWeeklyHours:          40,
		MaxConsecutiveShifts:    6,
		ConsecutiveLookbackDays: 2,
	}
}

func testCatalog() *domain.ShiftCatalog {
	return domain.NewShiftCatalog(
		&domain.ShiftType{Name: domain.ShiftDay, StartTime: "09:00:00", EndTime: "17:00:00"},
		&domain.ShiftType{Name: domain.ShiftEvening, StartTime: "17:00:00", EndTime: "01:00:00"},
		&domain.ShiftType{Name: domain.ShiftNight, StartTime: "01:00:00", EndTime: "09:00:00"},
	)
}

func testEmployee(id int64, departmentID int64, pref *domain.ShiftName) *domain.Employee {
	return &domain.Employee{
		ID:              id,
		DivisionID:      1,
		DepartmentID:    departmentID,
		ShiftPreference: pref,
		MaxWeeklyHours:  40,
	}
}

func newTestScheduler(employees []*domain.Employee, leaves []*domain.LeaveRecord, requirements domain.RequirementMap) *Scheduler {
	division := &domain.Division{ID: 1, Name: "测试部门群"}
	departments := []*domain.Department{
		{ID: 1, DivisionID: 1, Name: "销售部"},
		{ID: 2, DivisionID: 1, Name: "客服部"},
	}
	return New(testPolicy(), testCatalog(), division, departments, employees, leaves, testMonday, requirements)
}

func TestGenerateWeek_PreferenceOrder(t *testing.T) {
	// 偏好早班的和显式无偏好的排在偏好晚班的前面。
	// 周工时上限 40 小时，员工 1 和 2 排满 5 天后封顶，
	// 员工 3 只在最后两天补位，且每天只能补上一个缺口
	employees := []*domain.Employee{
		testEmployee(1, 1, prefOf(domain.ShiftDay)),
		testEmployee(2, 1, prefOf(domain.ShiftNoPreference)),
		testEmployee(3, 1, prefOf(domain.ShiftEvening)),
	}
	requirements := domain.RequirementMap{
		{DepartmentID: 1, Shift: domain.ShiftDay}: 2,
	}

	s := newTestScheduler(employees, nil, requirements)
	assignments, err := s.GenerateWeek()
	if err != nil {
		t.Fatalf("GenerateWeek() error = %v", err)
	}

	if len(assignments) != 12 {
		t.Fatalf("前 5 天 2 人 + 后 2 天 1 人应共 12 条排班，got %d", len(assignments))
	}

	perEmployee := make(map[int64]int)
	for _, a := range assignments {
		if a.Shift != domain.ShiftDay {
			t.Errorf("期望早班，got %s", a.Shift)
		}
		perEmployee[a.EmployeeID]++

		dayIndex := int(a.Date.Sub(testMonday).Hours() / 24)
		if dayIndex < 5 && a.EmployeeID == 3 {
			t.Errorf("%s 不应分配给偏好晚班的员工 3", a.Date.Format("2006-01-02"))
		}
		if dayIndex >= 5 && a.EmployeeID != 3 {
			t.Errorf("%s 只剩员工 3 未到周工时上限，got 员工 %d", a.Date.Format("2006-01-02"), a.EmployeeID)
		}
	}

	if perEmployee[1] != 5 || perEmployee[2] != 5 || perEmployee[3] != 2 {
		t.Errorf("各员工排班天数应为 5/5/2, got %d/%d/%d", perEmployee[1], perEmployee[2], perEmployee[3])
	}
}

func TestGenerateWeek_OneShiftPerEmployeePerDay(t *testing.T) {
	// 同一个员工一天最多一个班，早班排上后晚班应留空。
	// 上限放宽到 56 小时，让周工时约束不干扰本测试
	emp := testEmployee(1, 1, nil)
	emp.MaxWeeklyHours = 56
	employees := []*domain.Employee{emp}
	requirements := domain.RequirementMap{
		{DepartmentID: 1, Shift: domain.ShiftDay}:     1,
		{DepartmentID: 1, Shift: domain.ShiftEvening}: 1,
	}

	s := newTestScheduler(employees, nil, requirements)
	assignments, err := s.GenerateWeek()
	if err != nil {
		t.Fatalf("GenerateWeek() error = %v", err)
	}

	if len(assignments) != 7 {
		t.Fatalf("应有 7 条排班，got %d", len(assignments))
	}
	for _, a := range assignments {
		if a.Shift != domain.ShiftDay {
			t.Errorf("唯一的员工应只拿到早班，got %s", a.Shift)
		}
	}
}

func TestGenerateWeek_ApprovedLeaveExcluded(t *testing.T) {
	employees := []*domain.Employee{
		testEmployee(1, 1, nil),
		testEmployee(2, 1, nil),
	}
	leaves := []*domain.LeaveRecord{
		{EmployeeID: 1, Date: testMonday, Status: domain.LeaveStatusApproved},
		{EmployeeID: 2, Date: testMonday, Status: domain.LeaveStatusPending}, // 待审批不影响
	}
	requirements := domain.RequirementMap{
		{DepartmentID: 1, Shift: domain.ShiftDay}: 2,
	}

	s := newTestScheduler(employees, leaves, requirements)
	assignments, err := s.GenerateWeek()
	if err != nil {
		t.Fatalf("GenerateWeek() error = %v", err)
	}

	mondayCount := 0
	for _, a := range assignments {
		if !a.Date.Equal(testMonday) {
			continue
		}
		mondayCount++
		if a.EmployeeID == 1 {
			t.Error("已批准请假的员工 1 不应出现在周一的排班中")
		}
	}
	if mondayCount != 1 {
		t.Errorf("周一应只有员工 2 被排班，got %d 条", mondayCount)
	}
}

func TestGenerateWeek_WeeklyHourCap(t *testing.T) {
	// 上限 16 小时，每个早班 8 小时，排满两天后应停止
	emp := testEmployee(1, 1, nil)
	emp.MaxWeeklyHours = 16
	requirements := domain.RequirementMap{
		{DepartmentID: 1, Shift: domain.ShiftDay}: 1,
	}

	s := newTestScheduler([]*domain.Employee{emp}, nil, requirements)
	assignments, err := s.GenerateWeek()
	if err != nil {
		t.Fatalf("GenerateWeek() error = %v", err)
	}

	if len(assignments) != 2 {
		t.Fatalf("周工时上限 16 小时应只排 2 天，got %d", len(assignments))
	}
	if got := s.WeeklyHours(1); got != 16 {
		t.Errorf("WeeklyHours(1) = %v, want 16", got)
	}
}

func TestGenerateWeek_OvernightShiftHours(t *testing.T) {
	// 晚班跨天（17:00 - 次日 01:00）按 8 小时计，上限 16 小时同样只能排 2 天
	emp := testEmployee(1, 1, nil)
	emp.MaxWeeklyHours = 16
	requirements := domain.RequirementMap{
		{DepartmentID: 1, Shift: domain.ShiftEvening}: 1,
	}

	s := newTestScheduler([]*domain.Employee{emp}, nil, requirements)
	assignments, err := s.GenerateWeek()
	if err != nil {
		t.Fatalf("GenerateWeek() error = %v", err)
	}

	if len(assignments) != 2 {
		t.Fatalf("跨天班次也应按 8 小时计入周工时，应只排 2 天, got %d", len(assignments))
	}
	for _, a := range assignments {
		if a.WorkingHours() != 8 {
			t.Errorf("晚班时长应为 8 小时, got %v", a.WorkingHours())
		}
	}
}

func TestGenerateWeek_ShortfallIsNotAnError(t *testing.T) {
	// 人手不足时尽力而为，不报错。上限放宽到 56 小时，
	// 让两名员工整周都可排
	employees := []*domain.Employee{
		testEmployee(1, 1, nil),
		testEmployee(2, 1, nil),
	}
	for _, emp := range employees {
		emp.MaxWeeklyHours = 56
	}
	requirements := domain.RequirementMap{
		{DepartmentID: 1, Shift: domain.ShiftDay}: 5,
	}

	s := newTestScheduler(employees, nil, requirements)
	assignments, err := s.GenerateWeek()
	if err != nil {
		t.Fatalf("人手不足不应报错，got %v", err)
	}
	if len(assignments) != 14 {
		t.Errorf("两名员工每天都应被排上，got %d 条", len(assignments))
	}
}

func TestGenerateWeek_ZeroRequirementSkipped(t *testing.T) {
	employees := []*domain.Employee{
		testEmployee(1, 1, nil),
	}
	requirements := domain.RequirementMap{
		{DepartmentID: 1, Shift: domain.ShiftDay}: 0,
	}

	s := newTestScheduler(employees, nil, requirements)
	assignments, err := s.GenerateWeek()
	if err != nil {
		t.Fatalf("GenerateWeek() error = %v", err)
	}
	if len(assignments) != 0 {
		t.Errorf("需求为 0 时不应有任何排班，got %d 条", len(assignments))
	}
}

func TestGenerateWeek_MissingShiftInCatalog(t *testing.T) {
	// 班次目录缺失需求里的班次时整周生成失败
	catalog := domain.NewShiftCatalog(
		&domain.ShiftType{Name: domain.ShiftDay, StartTime: "09:00:00", EndTime: "17:00:00"},
	)
	division := &domain.Division{ID: 1}
	departments := []*domain.Department{{ID: 1, DivisionID: 1}}
	employees := []*domain.Employee{testEmployee(1, 1, nil)}
	requirements := domain.RequirementMap{
		{DepartmentID: 1, Shift: domain.ShiftNight}: 1,
	}

	s := New(testPolicy(), catalog, division, departments, employees, nil, testMonday, requirements)
	if _, err := s.GenerateWeek(); err == nil {
		t.Fatal("班次目录缺失时应报错")
	}
}

func TestGenerateWeek_CrossDepartmentExclusivity(t *testing.T) {
	// 一人一天一个班的约束跨部门生效。上限放宽到 56 小时，
	// 保证整周每天都有两条排班可查
	employees := []*domain.Employee{
		testEmployee(1, 1, nil),
		testEmployee(2, 2, nil),
	}
	for _, emp := range employees {
		emp.MaxWeeklyHours = 56
	}
	requirements := domain.RequirementMap{
		{DepartmentID: 1, Shift: domain.ShiftDay}:     1,
		{DepartmentID: 2, Shift: domain.ShiftEvening}: 1,
	}

	s := newTestScheduler(employees, nil, requirements)
	assignments, err := s.GenerateWeek()
	if err != nil {
		t.Fatalf("GenerateWeek() error = %v", err)
	}

	if len(assignments) != 14 {
		t.Fatalf("7 天 × 2 个部门应共 14 条排班，got %d", len(assignments))
	}

	seen := make(map[string]int)
	for _, a := range assignments {
		key := a.Date.Format("2006-01-02")
		seen[key]++
	}
	for day, count := range seen {
		if count != 2 {
			t.Errorf("%s 应有两个部门各一条排班，got %d", day, count)
		}
	}
}

func TestFilterByWeeklyHours(t *testing.T) {
	tests := []struct {
		name          string
		accruedHours  float64
		maxHours      int
		shiftHours    float64
		wantRemaining int
	}{
		{name: "未达上限，保留", accruedHours: 24, maxHours: 40, shiftHours: 8, wantRemaining: 1},
		{name: "恰好到达上限，保留", accruedHours: 32, maxHours: 40, shiftHours: 8, wantRemaining: 1},
		{name: "超过上限，剔除", accruedHours: 33, maxHours: 40, shiftHours: 8, wantRemaining: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := testEmployee(1, 1, nil)
			emp.MaxWeeklyHours = tt.maxHours

			s := newTestScheduler([]*domain.Employee{emp}, nil, nil)
			s.hoursByEmployee[1] = tt.accruedHours

			valid := s.filterByWeeklyHours([]*domain.Employee{emp}, tt.shiftHours)
			if len(valid) != tt.wantRemaining {
				t.Errorf("filterByWeeklyHours() 剩余 %d 人, want %d", len(valid), tt.wantRemaining)
			}
		})
	}
}
