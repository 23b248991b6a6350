package main

import (
	"bytes"
	"encoding/json"
	"html/template"
	"strings"
	"testing"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

func TestDecodeNotificationData(t *testing.T) {
	// 走一遍和发布端一致的序列化路径，字段应按 json 键回填
	payload, err := json.Marshal(&domain.NotificationMessage{
		Type: "absence_report",
		To:   "manager@example.com",
		Data: &domain.AbsenceReportMailData{
			FullName:     "王伟",
			DivisionName: "华南区",
			Date:         "2024-01-15",
			Lines:        []string{"李芳 早班 09:00:00 - 17:00:00"},
		},
	})
	if err != nil {
		t.Fatalf("序列化通知失败: %v", err)
	}

	envelope := mailEnvelope{}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		t.Fatalf("反序列化信封失败: %v", err)
	}

	decoded, err := decodeNotificationData(envelope.Type, envelope.Data)
	if err != nil {
		t.Fatalf("decodeNotificationData() error = %v", err)
	}
	report, ok := decoded.(*domain.AbsenceReportMailData)
	if !ok {
		t.Fatalf("缺勤报告应解析成 AbsenceReportMailData, got %T", decoded)
	}
	if report.FullName != "王伟" || report.DivisionName != "华南区" || report.Date != "2024-01-15" {
		t.Errorf("字段未按 json 键回填: %+v", report)
	}
	if len(report.Lines) != 1 || report.Lines[0] != "李芳 早班 09:00:00 - 17:00:00" {
		t.Errorf("缺勤行未回填: %v", report.Lines)
	}
}

func TestDecodeNotificationData_UnknownType(t *testing.T) {
	if _, err := decodeNotificationData("password_reset", json.RawMessage(`{}`)); err == nil {
		t.Fatal("未知通知类型应报错")
	}
}

func TestScheduleTemplateRendersDecodedData(t *testing.T) {
	// 模板引用的是结构体字段名，解码后的数据渲染出的正文不应为空
	payload, err := json.Marshal(&domain.NotificationMessage{
		Type: "schedule_published",
		To:   "employee@example.com",
		Data: &domain.SchedulePublishedMailData{
			FullName:      "张敏",
			WeekStartDate: "2024-01-15",
			Lines:         []string{"2024-01-15 早班 09:00:00 - 17:00:00"},
		},
	})
	if err != nil {
		t.Fatalf("序列化通知失败: %v", err)
	}

	envelope := mailEnvelope{}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		t.Fatalf("反序列化信封失败: %v", err)
	}
	decoded, err := decodeNotificationData(envelope.Type, envelope.Data)
	if err != nil {
		t.Fatalf("decodeNotificationData() error = %v", err)
	}

	tmpl, err := template.ParseFiles("../../templates/schedule_published_email.html")
	if err != nil {
		t.Fatalf("解析模板失败: %v", err)
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, decoded); err != nil {
		t.Fatalf("渲染模板失败: %v", err)
	}
	for _, want := range []string{"张敏", "2024-01-15", "早班"} {
		if !strings.Contains(body.String(), want) {
			t.Errorf("邮件正文应包含 %q:\n%s", want, body.String())
		}
	}
}
