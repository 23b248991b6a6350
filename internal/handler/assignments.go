package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

// UpdateAssignment 人工调整单条排班（换人、换日期或改起止时间）
// 调整后的记录会被标记为人工修改，重新生成整周排班时会连同其他记录一起被覆盖
func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID *int64  `json:"employeeID"`
		Date       *string `json:"date"`
		StartTime  *string `json:"startTime"`
		EndTime    *string `json:"endTime"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	assignment := r.Context().Value(AssignmentCtx).(*domain.ShiftAssignment)

	if req.EmployeeID != nil {
		if _, err := h.repository.GetEmployeeByID(*req.EmployeeID); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "员工不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
		assignment.EmployeeID = *req.EmployeeID
	}

	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			h.errorResponse(w, r, "日期格式错误，应为 YYYY-MM-DD")
			return
		}
		assignment.Date = date
	}

	if req.StartTime != nil {
		if _, err := time.Parse("15:04:05", *req.StartTime); err != nil {
			h.errorResponse(w, r, "开始时间格式错误，应为 HH:MM:SS")
			return
		}
		assignment.StartTime = *req.StartTime
	}

	if req.EndTime != nil {
		if _, err := time.Parse("15:04:05", *req.EndTime); err != nil {
			h.errorResponse(w, r, "结束时间格式错误，应为 HH:MM:SS")
			return
		}
		assignment.EndTime = *req.EndTime
	}

	assignment.IsManualOverride = true

	if err := h.repository.UpdateAssignment(assignment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "排班记录已被其他人修改，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 通知被调整排班的员工，通知失败不影响已落库的修改
	if emp, err := h.repository.GetEmployeeByID(assignment.EmployeeID); err != nil {
		slog.Warn("获取员工信息失败，跳过排班调整通知", "employee_id", assignment.EmployeeID, "error", err)
	} else {
		day := assignment.Date.Format(dateLayout)
		notification := &domain.EmployeeNotification{
			EmployeeID: emp.ID,
			Message: fmt.Sprintf("您 %s 的排班已调整为 %s（%s - %s）",
				day, assignment.Shift.DisplayName(), assignment.StartTime, assignment.EndTime),
		}
		if err := h.repository.CreateEmployeeNotification(notification); err != nil {
			slog.Warn("创建排班调整通知失败", "employee", emp.FullName, "error", err)
		} else if err := h.publishNotification("assignment_changed", emp.Email, &domain.AssignmentChangedMailData{
			FullName:  emp.FullName,
			Date:      day,
			ShiftName: assignment.Shift.DisplayName(),
			StartTime: assignment.StartTime,
			EndTime:   assignment.EndTime,
		}); err != nil {
			slog.Warn("排班调整通知投递到消息队列失败", "employee", emp.FullName, "error", err)
		}
	}

	h.successResponse(w, r, "排班调整成功", assignment)
}

// GetEmployeeAssignments 查询员工在一段日期内的排班，供个人日历视图使用
func (h *Handler) GetEmployeeAssignments(w http.ResponseWriter, r *http.Request) {
	employeeIDParam := chi.URLParam(r, "id")
	employeeID, err := strconv.ParseInt(employeeIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "员工ID无效")
		return
	}

	startDate, err := time.Parse(dateLayout, r.URL.Query().Get("startDate"))
	if err != nil {
		h.errorResponse(w, r, "起始日期格式错误，应为 YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse(dateLayout, r.URL.Query().Get("endDate"))
	if err != nil {
		h.errorResponse(w, r, "结束日期格式错误，应为 YYYY-MM-DD")
		return
	}
	if endDate.Before(startDate) {
		h.errorResponse(w, r, "结束日期不能早于起始日期")
		return
	}

	assignments, err := h.repository.GetAssignmentsByEmployeeAndDateRange(employeeID, startDate, endDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工排班成功", assignments)
}
