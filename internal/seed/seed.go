// Package seed 往数据库里插入一套可以直接演示的组织架构和考勤数据
package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/hrms-dev/attendance-manager/backend/internal/config"
	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
	"github.com/hrms-dev/attendance-manager/backend/internal/repository"
	"github.com/hrms-dev/attendance-manager/backend/internal/utils"
)

var demoDivisions = map[string][]string{
	"华东运营中心": {"销售部", "客服部", "仓储部"},
	"华南运营中心": {"销售部", "运维部"},
}

const employeesPerDepartment = 8

// SeedDemoData 插入演示数据：部门群、部门、经理和员工，
// 外加最近三天的请假和考勤记录，方便直接体验排班和缺勤检测
func SeedDemoData(cfg *config.Config, r *repository.Repository) {
	for divisionName, departmentNames := range demoDivisions {
		division := &domain.Division{Name: divisionName}
		if err := r.CreateDivision(division); err != nil {
			slog.Error("插入部门群失败", "name", divisionName, "error", err)
			continue
		}

		// 每个部门群配一个经理
		managerUser, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain, domain.RoleManager)
		if err != nil {
			slog.Error("无法生成经理用户", "error", err)
			continue
		}
		if err := r.CreateUser(managerUser); err != nil {
			slog.Error("插入经理用户失败", "error", err)
			continue
		}
		manager := &domain.Manager{UserID: managerUser.ID, DivisionID: division.ID}
		if err := r.CreateManager(manager); err != nil {
			slog.Error("插入经理失败", "error", err)
			continue
		}

		for _, departmentName := range departmentNames {
			dept := &domain.Department{DivisionID: division.ID, Name: departmentName}
			if err := r.CreateDepartment(dept); err != nil {
				slog.Error("插入部门失败", "name", departmentName, "error", err)
				continue
			}

			seedDepartmentEmployees(cfg, r, division, dept)
		}

		slog.Info("部门群演示数据插入完成", "division", divisionName)
	}
}

func seedDepartmentEmployees(cfg *config.Config, r *repository.Repository, division *domain.Division, dept *domain.Department) {
	for i := 0; i < employeesPerDepartment; i++ {
		user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain, domain.RoleEmployee)
		if err != nil {
			slog.Error("无法生成员工用户", "error", err)
			continue
		}
		if err := r.CreateUser(user); err != nil {
			slog.Error("插入员工用户失败", "error", err)
			continue
		}

		emp := &domain.Employee{
			UserID:          user.ID,
			EmployeeNumber:  utils.GenerateRandomEmployeeNumber(),
			DivisionID:      division.ID,
			DepartmentID:    dept.ID,
			ShiftPreference: utils.GenerateRandomShiftPreference(),
			MaxWeeklyHours:  cfg.Scheduling.MaxWeeklyHours,
		}
		if err := r.CreateEmployee(emp); err != nil {
			slog.Error("插入员工失败", "error", err)
			continue
		}

		seedEmployeeRecords(r, emp)
	}
}

// seedEmployeeRecords 给员工生成最近三天的请假和考勤记录
func seedEmployeeRecords(r *repository.Repository, emp *domain.Employee) {
	today := utils.DateOf(time.Now())

	for i := 1; i <= 3; i++ {
		date := today.AddDate(0, 0, -i)

		// 少数员工请假，请假的人没有考勤记录
		if rand.Intn(10) == 0 {
			leave := &domain.LeaveRecord{
				EmployeeID: emp.ID,
				Date:       date,
				Message:    "事假",
				Status:     domain.LeaveStatusApproved,
			}
			if err := r.CreateLeaveRecord(leave); err != nil {
				slog.Error("插入请假记录失败", "error", err)
			}
			continue
		}

		present := rand.Intn(10) != 0
		att := &domain.Attendance{
			EmployeeID: emp.ID,
			Date:       date,
			Present:    present,
		}
		if present {
			checkIn := fmt.Sprintf("09:%02d:00", rand.Intn(20))
			checkOut := fmt.Sprintf("17:%02d:00", rand.Intn(30))
			att.CheckIn = &checkIn
			att.CheckOut = &checkOut
			att.IsLate = checkIn > "09:10:00"
		}
		if err := r.CreateAttendance(att); err != nil {
			slog.Error("插入考勤记录失败", "error", err)
		}
	}
}
