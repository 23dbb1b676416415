package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TaskExecuteMode 任务执行模式
type TaskExecuteMode int

const (
	// TaskExecuteModeDistributed 分布式执行（需要获取锁，多实例下同一时刻只有一个实例执行）
	TaskExecuteModeDistributed TaskExecuteMode = iota
	// TaskExecuteModeLocal 本地执行
	TaskExecuteModeLocal
)

// TaskFunc 任务执行函数
type TaskFunc func(ctx context.Context) error

// Task 一个已注册的定时任务
type Task struct {
	ID          string
	Name        string
	Spec        string
	ExecuteMode TaskExecuteMode
	Timeout     time.Duration
	Func        TaskFunc
}

// NewCronTask 创建基于Cron表达式（6段，含秒）的任务
func NewCronTask(name, spec string, mode TaskExecuteMode, timeout time.Duration, fn TaskFunc) *Task {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Task{
		ID:          uuid.NewString(),
		Name:        name,
		Spec:        spec,
		ExecuteMode: mode,
		Timeout:     timeout,
		Func:        fn,
	}
}
