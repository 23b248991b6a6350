package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/hrms-dev/attendance-manager/backend/internal/config"
	"github.com/hrms-dev/attendance-manager/backend/internal/notifier"
	"github.com/hrms-dev/attendance-manager/backend/internal/repository"
	"github.com/hrms-dev/attendance-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// 缺勤检测任务，由 cron 每天运行一次，也可以用 -date 指定日期补跑
func main() {
	var dateFlag string
	flag.StringVar(&dateFlag, "date", "", "要检测的日期（YYYY-MM-DD），默认今天")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	date := utils.DateOf(time.Now())
	if dateFlag != "" {
		date, err = time.Parse("2006-01-02", dateFlag)
		if err != nil {
			logger.Error("日期格式错误，应为 YYYY-MM-DD", "date", dateFlag)
			os.Exit(1)
		}
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	// rabbitmq 连不上时降级为只写站内通知，不发邮件
	var notifyChannel *amqp.Channel
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Warn("无法连接到 rabbitmq，跳过邮件投递", "error", err)
	} else {
		defer conn.Close()
		notifyChannel, err = conn.Channel()
		if err != nil {
			logger.Warn("无法建立通道，跳过邮件投递", "error", err)
			notifyChannel = nil
		} else {
			defer notifyChannel.Close()
			if _, err := notifyChannel.QueueDeclare("notification_queue", true, false, false, false, nil); err != nil {
				logger.Warn("无法声明队列，跳过邮件投递", "error", err)
				notifyChannel = nil
			}
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	n := notifier.New(cfg, repo, notifyChannel, rdb)
	if err := n.Run(date); err != nil {
		logger.Error("缺勤检测失败", "date", date.Format("2006-01-02"), "error", err)
		os.Exit(1)
	}

	logger.Info("缺勤检测完成", "date", date.Format("2006-01-02"))
}
