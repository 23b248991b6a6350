package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/hrms-dev/attendance-manager/backend/internal/notifier"
	"github.com/hrms-dev/attendance-manager/backend/internal/utils"
)

// NotifyAbsences 手工触发一次缺勤检测
// 日常运行由 cmd/notifier 的定时任务完成，这个入口用于补发
func (h *Handler) NotifyAbsences(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}

	// 不带请求体时默认检测今天
	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}

	date := utils.DateOf(time.Now())
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			h.errorResponse(w, r, "日期格式错误，应为 YYYY-MM-DD")
			return
		}
		date = parsed
	}

	n := notifier.New(h.config, h.repository, h.notifyChannel, h.redisClient)
	if err := n.Run(date); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "缺勤检测已执行", nil)
}
