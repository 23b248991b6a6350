package scheduler

import (
	"fmt"
	"time"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

const dateLayout = "2006-01-02"

// Scheduler 一次排班生成的上下文：输入数据在 New 时全部加载完毕，
// GenerateWeek 在内存中完成整周的分配，持久化交给调用方
type Scheduler struct {
	policy        *Policy
	catalog       *domain.ShiftCatalog
	division      *domain.Division
	departments   []*domain.Department
	employees     []*domain.Employee
	weekStartDate time.Time
	requirements  domain.RequirementMap

	// onLeave[日期][员工ID]：该员工当天有已批准的请假
	onLeave map[string]map[int64]bool

	// 本次生成中已提交的排班
	assignments     []*domain.ShiftAssignment
	byEmployeeDate  map[string]*domain.ShiftAssignment // "empID|date" -> 排班
	hoursByEmployee map[int64]float64                  // 已提交时长累计
}

func New(
	policy *Policy,
	catalog *domain.ShiftCatalog,
	division *domain.Division,
	departments []*domain.Department,
	employees []*domain.Employee,
	leaves []*domain.LeaveRecord,
	weekStartDate time.Time,
	requirements domain.RequirementMap,
) *Scheduler {
	s := &Scheduler{
		policy:          policy,
		catalog:         catalog,
		division:        division,
		departments:     departments,
		employees:       employees,
		weekStartDate:   weekStartDate,
		requirements:    requirements,
		onLeave:         make(map[string]map[int64]bool),
		assignments:     make([]*domain.ShiftAssignment, 0),
		byEmployeeDate:  make(map[string]*domain.ShiftAssignment),
		hoursByEmployee: make(map[int64]float64),
	}

	// 只有已批准的请假才让员工退出候选，待审批和已驳回的不影响
	for _, leave := range leaves {
		if leave.Status != domain.LeaveStatusApproved {
			continue
		}
		day := leave.Date.Format(dateLayout)
		if _, exists := s.onLeave[day]; !exists {
			s.onLeave[day] = make(map[int64]bool)
		}
		s.onLeave[day][leave.EmployeeID] = true
	}

	return s
}

// GenerateWeek 从周一开始按日期升序生成 7 天的排班
// 日期顺序是硬性的：第 N 天已提交的排班是第 N+1 天工时和连班检查的输入
func (s *Scheduler) GenerateWeek() ([]*domain.ShiftAssignment, error) {
	for i := 0; i < 7; i++ {
		date := s.weekStartDate.AddDate(0, 0, i)
		if err := s.assignDay(date); err != nil {
			// 失败时放弃剩余天数，已生成的部分由调用方决定是否落库
			return nil, fmt.Errorf("生成 %s 的排班失败: %w", date.Format(dateLayout), err)
		}
	}
	return s.assignments, nil
}

// Assignments 返回当前已提交的排班
func (s *Scheduler) Assignments() []*domain.ShiftAssignment {
	return s.assignments
}

// availableEmployees 某天某部门的可用员工：排除已批准请假的，保持员工目录的原始顺序
func (s *Scheduler) availableEmployees(departmentID int64, date time.Time) []*domain.Employee {
	day := date.Format(dateLayout)
	var pool []*domain.Employee
	for _, emp := range s.employees {
		if emp.DepartmentID != departmentID {
			continue
		}
		if s.onLeave[day][emp.ID] {
			continue
		}
		pool = append(pool, emp)
	}
	return pool
}

func (s *Scheduler) commit(emp *domain.Employee, date time.Time, shift *domain.ShiftType) {
	a := &domain.ShiftAssignment{
		EmployeeID: emp.ID,
		Date:       date,
		Shift:      shift.Name,
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
	}
	s.assignments = append(s.assignments, a)
	s.byEmployeeDate[assignmentKey(emp.ID, date)] = a
	s.hoursByEmployee[emp.ID] += a.WorkingHours()
}

func assignmentKey(employeeID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", employeeID, date.Format(dateLayout))
}
