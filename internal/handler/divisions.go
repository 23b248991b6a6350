package handler

import (
	"net/http"
	"time"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
	"github.com/hrms-dev/attendance-manager/backend/internal/utils"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	h.successResponse(w, r, "获取个人信息成功", myInfo)
}

func (h *Handler) GetAllDivisions(w http.ResponseWriter, r *http.Request) {
	divisions, err := h.repository.GetAllDivisions()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取部门群列表成功", divisions)
}

func (h *Handler) GetDivision(w http.ResponseWriter, r *http.Request) {
	division := r.Context().Value(DivisionCtx).(*domain.Division)

	departments, err := h.repository.GetDepartmentsByDivision(division.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取部门群成功", map[string]any{
		"division":    division,
		"departments": departments,
	})
}

func (h *Handler) GetDivisionSchedules(w http.ResponseWriter, r *http.Request) {
	division := r.Context().Value(DivisionCtx).(*domain.Division)

	schedules, err := h.repository.GetSchedulesByDivision(division.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// current=true 时只返回还没结束的周（员工视角的"我的排班"）
	if r.URL.Query().Get("current") == "true" {
		today := utils.DateOf(time.Now())
		filtered := make([]*domain.WeekSchedule, 0, len(schedules))
		for _, s := range schedules {
			if !s.WeekEndDate.Before(today) {
				filtered = append(filtered, s)
			}
		}
		schedules = filtered
	}

	h.successResponse(w, r, "获取排班表列表成功", schedules)
}

// GetDivisionEvents 取部门群最新一周排班的日历事件
func (h *Handler) GetDivisionEvents(w http.ResponseWriter, r *http.Request) {
	division := r.Context().Value(DivisionCtx).(*domain.Division)

	schedules, err := h.repository.GetSchedulesByDivision(division.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if len(schedules) == 0 {
		h.successResponse(w, r, "该部门群还没有排班表", []any{})
		return
	}

	// GetSchedulesByDivision 按周起始日期降序返回，第一个就是最新的
	h.writeScheduleEvents(w, r, schedules[0])
}
