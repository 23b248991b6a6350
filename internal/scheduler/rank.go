package scheduler

import "github.com/hrms-dev/attendance-manager/backend/internal/domain"

// rankCandidates 把候选人按偏好分成三档后拼接：
//  1. 偏好与目标班次完全一致的
//  2. 显式填了"无偏好"的
//  3. 其余所有人（包括偏好其他班次的和没填偏好的）
//
// 档内保持传入顺序，不做二次排序。这是刻意的简化，不是公平性承诺
func rankCandidates(pool []*domain.Employee, target domain.ShiftName) []*domain.Employee {
	var preferred, neutral, others []*domain.Employee

	for _, emp := range pool {
		switch {
		case emp.ShiftPreference != nil && *emp.ShiftPreference == target:
			preferred = append(preferred, emp)
		case emp.ShiftPreference != nil && *emp.ShiftPreference == domain.ShiftNoPreference:
			neutral = append(neutral, emp)
		default:
			others = append(others, emp)
		}
	}

	ranked := make([]*domain.Employee, 0, len(pool))
	ranked = append(ranked, preferred...)
	ranked = append(ranked, neutral...)
	ranked = append(ranked, others...)
	return ranked
}
