package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/hrms-dev/attendance-manager/backend/internal/config"
	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
	"github.com/hrms-dev/attendance-manager/backend/internal/repository"
	"github.com/hrms-dev/attendance-manager/backend/internal/scheduler"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client

	// 排班策略和班次目录在进程启动时构造一次，此后只读
	policy  *scheduler.Policy
	catalog *domain.ShiftCatalog

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,

		policy:  scheduler.PolicyFromConfig(cfg),
		catalog: scheduler.CatalogFromConfig(cfg),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.With(h.myInfo).Get("/my-info", h.GetMyInfo)

		r.Route("/divisions", func(r chi.Router) {
			r.Get("/", h.GetAllDivisions)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.division)
				r.Get("/", h.GetDivision)
				r.Get("/schedules", h.GetDivisionSchedules) // 员工也可以查看本部门群的排班
				r.Get("/events", h.GetDivisionEvents)
			})
		})

		r.Route("/schedules", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).With(h.managerInfo).Post("/", h.GenerateSchedule)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.schedule)
				r.Get("/", h.GetSchedule)
				r.Get("/events", h.GetScheduleEvents)
			})
		})

		r.Route("/assignments/{id}", func(r chi.Router) {
			r.Use(h.assignment)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleCEO})).Patch("/", h.UpdateAssignment)
		})

		r.Get("/employees/{id}/assignments", h.GetEmployeeAssignments)

		// 缺勤检测一般由定时任务触发，这里保留手工触发的入口
		r.With(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleCEO})).Post("/absence-notifications", h.NotifyAbsences)
	})
}
