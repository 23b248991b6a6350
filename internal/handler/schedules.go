package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
	"github.com/hrms-dev/attendance-manager/backend/internal/repository"
	"github.com/hrms-dev/attendance-manager/backend/internal/scheduler"
	"github.com/hrms-dev/attendance-manager/backend/internal/utils"
)

const dateLayout = "2006-01-02"

// GenerateSchedule 为经理所在的部门群生成一周排班
// 生成在内存中完成，整周结果在一个事务内落库
func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WeekStartDate string `json:"weekStartDate" validate:"required"`
		Regenerate    bool   `json:"regenerate"`
		Requirements  []struct {
			DepartmentID  int64            `json:"departmentID" validate:"required"`
			Shift         domain.ShiftName `json:"shift" validate:"required"`
			RequiredCount int32            `json:"requiredCount" validate:"gte=0"`
		} `json:"requirements" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	weekStartDate, err := time.Parse(dateLayout, req.WeekStartDate)
	if err != nil {
		h.errorResponse(w, r, "周起始日期格式错误，应为 YYYY-MM-DD")
		return
	}
	if err := utils.ValidateWeekStartDate(weekStartDate); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	manager := r.Context().Value(ManagerCtx).(*domain.Manager)

	departments, err := h.repository.GetDepartmentsByDivision(manager.DivisionID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	requirements := make(domain.RequirementMap, len(req.Requirements))
	for _, item := range req.Requirements {
		key := domain.RequirementKey{DepartmentID: item.DepartmentID, Shift: item.Shift}
		requirements[key] = item.RequiredCount
	}
	if err := utils.ValidateRequirements(requirements, departments); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	// 用 redis 锁挡住同一个 (division, week) 的并发生成请求
	lockKey := fmt.Sprintf("schedule_lock:%d:%s", manager.DivisionID, weekStartDate.Format(dateLayout))
	lockExpiration := time.Duration(h.config.Notification.GenerateLockExpiration) * time.Second

	redisCtx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	locked, err := h.redisClient.SetNX(redisCtx, lockKey, "1", lockExpiration).Result()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !locked {
		h.errorResponse(w, r, "该周的排班正在生成中，请稍后重试")
		return
	}
	defer func() {
		delCtx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
		defer cancel()
		if err := h.redisClient.Del(delCtx, lockKey).Err(); err != nil {
			slog.Warn("释放排班生成锁失败", "key", lockKey, "error", err)
		}
	}()

	// 已存在且不要求重新生成时，不做任何修改直接报冲突
	if !req.Regenerate {
		if _, err := h.repository.GetScheduleByDivisionAndWeek(manager.DivisionID, weekStartDate); err == nil {
			h.errorResponse(w, r, "该周的排班表已存在")
			return
		} else if !errors.Is(err, sql.ErrNoRows) {
			h.internalServerError(w, r, err)
			return
		}
	}

	division, err := h.repository.GetDivisionByID(manager.DivisionID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	employees, err := h.repository.GetEmployeesByDivision(manager.DivisionID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	weekEndDate := weekStartDate.AddDate(0, 0, 6)
	leaves, err := h.repository.GetLeaveRecordsByDivisionAndDateRange(manager.DivisionID, weekStartDate, weekEndDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	sched := scheduler.New(h.policy, h.catalog, division, departments, employees, leaves, weekStartDate, requirements)
	assignments, err := sched.GenerateWeek()
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	schedule := &domain.WeekSchedule{
		DivisionID:    manager.DivisionID,
		WeekStartDate: weekStartDate,
		WeekEndDate:   weekEndDate,
		CreatedBy:     manager.ID,
	}

	if err := h.repository.SaveSchedule(schedule, requirements, assignments, req.Regenerate); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, repository.ErrScheduleExists):
			h.errorResponse(w, r, "该周的排班表已存在")
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "week_schedules_division_id_week_start_date_key":
			h.errorResponse(w, r, "该周的排班表已存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 给每个被排班的员工发布排班通知，通知失败不影响已落库的排班
	h.publishScheduleNotices(employees, weekStartDate, assignments)

	h.successResponse(w, r, "排班生成成功", map[string]any{
		"schedule":    schedule,
		"assignments": assignments,
	})
}

// publishScheduleNotices 按员工汇总其一周的排班并逐个通知
func (h *Handler) publishScheduleNotices(employees []*domain.Employee, weekStartDate time.Time, assignments []*domain.ShiftAssignment) {
	employeeByID := make(map[int64]*domain.Employee, len(employees))
	for _, emp := range employees {
		employeeByID[emp.ID] = emp
	}

	byEmployee := make(map[int64][]*domain.ShiftAssignment)
	order := make([]int64, 0)
	for _, a := range assignments {
		if _, exists := byEmployee[a.EmployeeID]; !exists {
			order = append(order, a.EmployeeID)
		}
		byEmployee[a.EmployeeID] = append(byEmployee[a.EmployeeID], a)
	}

	for _, employeeID := range order {
		emp, exists := employeeByID[employeeID]
		if !exists {
			continue
		}

		lines := make([]string, 0, len(byEmployee[employeeID]))
		for _, a := range byEmployee[employeeID] {
			lines = append(lines, fmt.Sprintf("%s %s %s - %s", a.Date.Format(dateLayout), a.Shift.DisplayName(), a.StartTime, a.EndTime))
		}

		message := fmt.Sprintf("您 %s 起一周的排班已发布：\n", weekStartDate.Format(dateLayout))
		for _, line := range lines {
			message += "- " + line + "\n"
		}

		notification := &domain.EmployeeNotification{
			EmployeeID: employeeID,
			Message:    message,
		}
		if err := h.repository.CreateEmployeeNotification(notification); err != nil {
			slog.Warn("创建排班发布通知失败", "employee", emp.FullName, "error", err)
			continue
		}

		if err := h.publishNotification("schedule_published", emp.Email, &domain.SchedulePublishedMailData{
			FullName:      emp.FullName,
			WeekStartDate: weekStartDate.Format(dateLayout),
			Lines:         lines,
		}); err != nil {
			slog.Warn("排班发布通知投递到消息队列失败", "employee", emp.FullName, "error", err)
		}
	}
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.WeekSchedule)

	requirements, err := h.repository.GetRequirementsByScheduleID(schedule.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	assignments, err := h.repository.GetAssignmentsByScheduleID(schedule.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排班表成功", map[string]any{
		"schedule":     schedule,
		"requirements": requirements,
		"assignments":  assignments,
	})
}

// ShiftEvent 日历视图用的排班事件，跨天班次的结束时间落在次日
type ShiftEvent struct {
	ID               int64  `json:"id"`
	EmployeeID       int64  `json:"employeeID"`
	Title            string `json:"title"`
	Start            string `json:"start"`
	End              string `json:"end"`
	IsManualOverride bool   `json:"isManualOverride"`
}

func (h *Handler) GetScheduleEvents(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.WeekSchedule)
	h.writeScheduleEvents(w, r, schedule)
}

// writeScheduleEvents 把排班表转换成日历事件，支持按部门或员工过滤
func (h *Handler) writeScheduleEvents(w http.ResponseWriter, r *http.Request, schedule *domain.WeekSchedule) {
	var departmentID, employeeID int64
	if param := r.URL.Query().Get("departmentID"); param != "" {
		id, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "部门ID无效")
			return
		}
		departmentID = id
	}
	if param := r.URL.Query().Get("employeeID"); param != "" {
		id, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "员工ID无效")
			return
		}
		employeeID = id
	}

	assignments, err := h.repository.GetAssignmentsByScheduleID(schedule.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	employees, err := h.repository.GetEmployeesByDivision(schedule.DivisionID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	employeeByID := make(map[int64]*domain.Employee, len(employees))
	for _, emp := range employees {
		employeeByID[emp.ID] = emp
	}

	events := make([]*ShiftEvent, 0, len(assignments))
	for _, a := range assignments {
		if employeeID != 0 && a.EmployeeID != employeeID {
			continue
		}
		if departmentID != 0 {
			emp, exists := employeeByID[a.EmployeeID]
			if !exists || emp.DepartmentID != departmentID {
				continue
			}
		}
		startDate := a.Date
		endDate := a.Date
		startTime, err := time.Parse("15:04:05", a.StartTime)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		endTime, err := time.Parse("15:04:05", a.EndTime)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if !endTime.After(startTime) {
			endDate = endDate.AddDate(0, 0, 1)
		}

		title := a.Shift.DisplayName()
		if emp, exists := employeeByID[a.EmployeeID]; exists {
			title = emp.FullName + " " + title
		}

		events = append(events, &ShiftEvent{
			ID:               a.ID,
			EmployeeID:       a.EmployeeID,
			Title:            title,
			Start:            startDate.Format(dateLayout) + "T" + a.StartTime,
			End:              endDate.Format(dateLayout) + "T" + a.EndTime,
			IsManualOverride: a.IsManualOverride,
		})
	}

	h.successResponse(w, r, "获取排班事件成功", events)
}
