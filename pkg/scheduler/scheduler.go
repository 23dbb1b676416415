package scheduler

import (
	"context"
	"errors"
	"time"

	"astrolink/pkg/core/logger"

	"github.com/bsm/redislock"
	"github.com/robfig/cron/v3"
)

// Scheduler 定时任务调度器。本地任务直接执行；分布式任务在执行前
// 先抢占 redis 锁，抢不到说明另一个实例正在跑（或上一轮还没结束），本轮跳过。
// 批处理任务（点击聚合、过期清理）依赖该锁避免重叠执行
type Scheduler struct {
	cron   *cron.Cron
	locker *redislock.Client
	log    *logger.Log
}

// NewScheduler 创建调度器实例，locker 可为 nil（此时分布式任务退化为本地执行）
func NewScheduler(locker *redislock.Client) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		locker: locker,
		log:    logger.GetLogger().WithEntryName("Scheduler"),
	}
}

// AddTask 注册任务
func (s *Scheduler) AddTask(task *Task) error {
	_, err := s.cron.AddFunc(task.Spec, func() {
		s.run(task)
	})
	if err != nil {
		s.log.WithErr(err).WithField("task", task.Name).Error("注册定时任务失败")
		return err
	}
	s.log.WithField("task", task.Name).WithField("spec", task.Spec).Info("定时任务已注册")
	return nil
}

// Start 启动调度器
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop 停止调度器并等待正在执行的任务结束
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) run(task *Task) {
	ctx, cancel := context.WithTimeout(context.Background(), task.Timeout)
	defer cancel()

	if task.ExecuteMode == TaskExecuteModeDistributed && s.locker != nil {
		lock, err := s.locker.Obtain(ctx, "scheduler:task:"+task.Name, task.Timeout, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			s.log.WithField("task", task.Name).Debug("未获取到任务锁，本轮跳过")
			return
		}
		if err != nil {
			s.log.WithErr(err).WithField("task", task.Name).Error("获取任务锁失败")
			return
		}
		defer func() {
			releaseCtx, releaseCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer releaseCancel()
			if err := lock.Release(releaseCtx); err != nil {
				s.log.WithErr(err).WithField("task", task.Name).Warn("释放任务锁失败")
			}
		}()
	}

	start := time.Now()
	if err := task.Func(ctx); err != nil {
		s.log.WithErr(err).WithField("task", task.Name).Error("定时任务执行失败")
		return
	}
	s.log.WithField("task", task.Name).WithField("cost", time.Since(start).String()).Info("定时任务执行完成")
}
