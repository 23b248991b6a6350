// Package notifier 实现缺勤检测：对比某天"应到"（有排班）与"实到"（有考勤）
// 的员工，按 division 汇总后通知该 division 的所有经理
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/hrms-dev/attendance-manager/backend/internal/config"
	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
	"github.com/hrms-dev/attendance-manager/backend/internal/repository"
)

type AbsenceNotifier struct {
	cfg           *config.Config
	repository    *repository.Repository
	notifyChannel *amqp.Channel // 可以为 nil，此时不投递队列消息
	redisClient   *redis.Client // 可以为 nil，此时关闭同日去重，重复运行会重复通知
}

func New(cfg *config.Config, repo *repository.Repository, ch *amqp.Channel, rdb *redis.Client) *AbsenceNotifier {
	return &AbsenceNotifier{
		cfg:           cfg,
		repository:    repo,
		notifyChannel: ch,
		redisClient:   rdb,
	}
}

// Run 对所有 division 执行一次缺勤检测
// 只读排班和考勤，不修改它们；单个 division 失败不影响其余的
func (n *AbsenceNotifier) Run(date time.Time) error {
	divisions, err := n.repository.GetAllDivisions()
	if err != nil {
		return err
	}

	for _, division := range divisions {
		if err := n.notifyDivision(division, date); err != nil {
			slog.Error("缺勤检测失败", "division", division.Name, "date", date.Format("2006-01-02"), "error", err)
		}
	}

	return nil
}

func (n *AbsenceNotifier) notifyDivision(division *domain.Division, date time.Time) error {
	day := date.Format("2006-01-02")

	// 去重：同一个 (division, date) 成功通知过一次就不再发
	dedupeKey := fmt.Sprintf("absence_notified:%d:%s", division.ID, day)
	if n.redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(n.cfg.Redis.OperationExpiration)*time.Second)
		defer cancel()

		exists, err := n.redisClient.Exists(ctx, dedupeKey).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			slog.Info("当天的缺勤通知已发送过，跳过", "division", division.Name, "date", day)
			return nil
		}
	}

	scheduled, err := n.repository.GetAssignmentsByDivisionAndDate(division.ID, date)
	if err != nil {
		return err
	}

	presentIDs, err := n.repository.GetPresentEmployeeIDs(division.ID, date)
	if err != nil {
		return err
	}

	absentIDs := DetectAbsentees(scheduled, presentIDs)
	if len(absentIDs) == 0 {
		return nil
	}

	// 补全缺勤员工的档案信息和各自的排班类型
	employees, err := n.repository.GetEmployeesByDivision(division.ID)
	if err != nil {
		return err
	}
	employeeByID := make(map[int64]*domain.Employee, len(employees))
	for _, emp := range employees {
		employeeByID[emp.ID] = emp
	}

	shiftByEmployee := make(map[int64]domain.ShiftName, len(scheduled))
	for _, a := range scheduled {
		shiftByEmployee[a.EmployeeID] = a.Shift
	}

	var absentees []*domain.Employee
	for _, id := range absentIDs {
		if emp, exists := employeeByID[id]; exists {
			absentees = append(absentees, emp)
		}
	}

	message, lines := ComposeAbsenceMessage(date, absentees, shiftByEmployee)

	managers, err := n.repository.GetManagersByDivision(division.ID)
	if err != nil {
		return err
	}

	for _, manager := range managers {
		notification := &domain.ManagerNotification{
			ManagerID: manager.ID,
			Message:   message,
		}
		if err := n.repository.CreateManagerNotification(notification); err != nil {
			return err
		}

		// 队列投递失败只记日志，不回滚已创建的通知记录
		if err := n.publish(manager.Email, &domain.AbsenceReportMailData{
			FullName:     manager.FullName,
			DivisionName: division.Name,
			Date:         day,
			Lines:        lines,
		}); err != nil {
			slog.Warn("缺勤报告投递到消息队列失败", "manager", manager.FullName, "error", err)
		}
	}

	slog.Info("已发送缺勤通知", "division", division.Name, "date", day, "absent", len(absentees), "managers", len(managers))

	if n.redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(n.cfg.Redis.OperationExpiration)*time.Second)
		defer cancel()

		expiration := time.Duration(n.cfg.Notification.DedupeExpiration) * time.Second
		if err := n.redisClient.Set(ctx, dedupeKey, day, expiration).Err(); err != nil {
			return err
		}
	}

	return nil
}

func (n *AbsenceNotifier) publish(to string, data *domain.AbsenceReportMailData) error {
	if n.notifyChannel == nil {
		return nil
	}

	body, err := json.Marshal(domain.NotificationMessage{
		Type: "absence_report",
		To:   to,
		Data: data,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(n.cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return n.notifyChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// DetectAbsentees 集合差：有排班但没有在岗考勤的员工
// 结果保持排班的原始顺序，同一员工只出现一次
func DetectAbsentees(scheduled []*domain.ShiftAssignment, presentIDs []int64) []int64 {
	present := make(map[int64]bool, len(presentIDs))
	for _, id := range presentIDs {
		present[id] = true
	}

	seen := make(map[int64]bool, len(scheduled))
	var absent []int64
	for _, a := range scheduled {
		if present[a.EmployeeID] || seen[a.EmployeeID] {
			continue
		}
		seen[a.EmployeeID] = true
		absent = append(absent, a.EmployeeID)
	}

	return absent
}

// ComposeAbsenceMessage 生成发给经理的缺勤汇总，每个缺勤员工一行
func ComposeAbsenceMessage(date time.Time, absentees []*domain.Employee, shiftByEmployee map[int64]domain.ShiftName) (string, []string) {
	lines := make([]string, 0, len(absentees))
	for _, emp := range absentees {
		if shift, exists := shiftByEmployee[emp.ID]; exists {
			lines = append(lines, fmt.Sprintf("%s（工号 %s）——排班：%s", emp.FullName, emp.EmployeeNumber, shift.DisplayName()))
		} else {
			lines = append(lines, fmt.Sprintf("%s（工号 %s）——无排班记录", emp.FullName, emp.EmployeeNumber))
		}
	}

	message := fmt.Sprintf("%s 缺勤员工名单：\n", date.Format("2006-01-02"))
	for _, line := range lines {
		message += "- " + line + "\n"
	}

	return message, lines
}
