package handler

type ContextKey string

var (
	RoleCtxKey    ContextKey = "role"
	SubCtxKey     ContextKey = "sub"
	MyInfoCtx     ContextKey = "myInfo"
	ManagerCtx    ContextKey = "manager"
	DivisionCtx   ContextKey = "division"
	ScheduleCtx   ContextKey = "schedule"
	AssignmentCtx ContextKey = "assignment"
)
