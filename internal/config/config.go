package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

// ShiftTimingConfig 单个班次的名义起止时间与容忍窗口
type ShiftTimingConfig struct {
	StartTime            string `env:"START_TIME"`
	EndTime              string `env:"END_TIME"`
	LateThresholdMinutes int    `env:"LATE_THRESHOLD_MINUTES" envDefault:"10"`
	EarlyLeaveMinutes    int    `env:"EARLY_LEAVE_MINUTES" envDefault:"10"`
	DurationHours        int    `env:"DURATION_HOURS" envDefault:"8"`
}

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	InitialAdmin struct {
		Username string `env:"USERNAME" envDefault:"admin"`
		Password string `env:"PASSWORD,required"`
		FullName string `env:"FULL_NAME" envDefault:"管理员"`
		Email    string `env:"EMAIL,required"`
	} `envPrefix:"INITIAL_ADMIN_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"1209600"` // 14 天
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Seed struct {
		User struct {
			Password string `env:"PASSWORD,required"`
		} `envPrefix:"USER_"`
	} `envPrefix:"SEED_"`
	Email struct {
		UserDomain string `env:"USER_DOMAIN,required"`
		SMTP       struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host                string `env:"HOST" envDefault:"localhost"`
		Port                int    `env:"PORT" envDefault:"6379"`
		Password            string `env:"PASSWORD,required"`
		ConnectTimeout      int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationExpiration int    `env:"OPERATION_EXPIRATION" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	// 班次目录：A 早班 / B 晚班 / C 夜班（N 表示无偏好，不参与分配）
	Shifts struct {
		Day     ShiftTimingConfig `envPrefix:"DAY_"`
		Evening ShiftTimingConfig `envPrefix:"EVENING_"`
		Night   ShiftTimingConfig `envPrefix:"NIGHT_"`
	} `envPrefix:"SHIFT_"`
	// 排班约束策略，进程启动时加载一次，之后只读
	Scheduling struct {
		MaxWeeklyHours          int `env:"MAX_WEEKLY_HOURS" envDefault:"40"`
		MaxConsecutiveShifts    int `env:"MAX_CONSECUTIVE_SHIFTS" envDefault:"6"`
		ConsecutiveLookbackDays int `env:"CONSECUTIVE_LOOKBACK_DAYS" envDefault:"2"`
		MinRestHours            int `env:"MIN_REST_HOURS" envDefault:"8"`
		MaxNightShiftsPerWeek   int `env:"MAX_NIGHT_SHIFTS_PER_WEEK" envDefault:"3"`
		PreferencePriority      int `env:"PREFERENCE_PRIORITY" envDefault:"2"`
	} `envPrefix:"SCHEDULING_"`
	Notification struct {
		GenerateLockExpiration int `env:"GENERATE_LOCK_EXPIRATION" envDefault:"60"`  // 生成排班时的 redis 锁过期时间（秒）
		DedupeExpiration       int `env:"DEDUPE_EXPIRATION" envDefault:"172800"`     // 缺勤通知去重键过期时间（秒），默认 48 小时
	} `envPrefix:"NOTIFICATION_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
	}

	// 班次起止时间的默认值不方便写在 tag 里，统一在这里填充
	if cfg.Shifts.Day.StartTime == "" {
		cfg.Shifts.Day.StartTime = "09:00:00"
		cfg.Shifts.Day.EndTime = "17:00:00"
	}
	if cfg.Shifts.Evening.StartTime == "" {
		cfg.Shifts.Evening.StartTime = "17:00:00"
		cfg.Shifts.Evening.EndTime = "01:00:00" // 次日凌晨
	}
	if cfg.Shifts.Night.StartTime == "" {
		cfg.Shifts.Night.StartTime = "01:00:00"
		cfg.Shifts.Night.EndTime = "09:00:00"
	}

	return cfg, nil
}
