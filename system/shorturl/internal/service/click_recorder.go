package service

import (
	"context"
	"sync"
	"time"

	"astrolink/pkg/core/logger"
	"astrolink/system/shorturl/internal/model"
)

const (
	clickQueueSize   = 1024
	clickWorkerCount = 2
)

// clickEventAppender 点击事件写入能力（由 ClickEventDao 提供）
type clickEventAppender interface {
	Create(ctx context.Context, event *model.ClickEvent) error
}

// ClickRecorder 异步点击记录器。请求线程只向有界队列投递，
// 队列满时丢弃并告警，绝不阻塞跳转；落库由固定数量的 worker 完成
type ClickRecorder struct {
	appender clickEventAppender
	queue    chan *model.ClickEvent
	wg       sync.WaitGroup
	log      *logger.Log

	closeOnce sync.Once
}

// NewClickRecorder 创建点击记录器并启动 worker
func NewClickRecorder(appender clickEventAppender, log *logger.Log) *ClickRecorder {
	r := &ClickRecorder{
		appender: appender,
		queue:    make(chan *model.ClickEvent, clickQueueSize),
		log:      log.WithEntryName("ClickRecorder"),
	}

	for i := 0; i < clickWorkerCount; i++ {
		r.wg.Add(1)
		go r.worker()
	}

	return r
}

// Record 投递一次点击。非阻塞：队列满时丢弃该事件
func (r *ClickRecorder) Record(linkID int64, ip, userAgent string) {
	event := &model.ClickEvent{
		LinkID:    linkID,
		IPAddress: ip,
		UserAgent: userAgent,
		Timestamp: time.Now(),
	}

	select {
	case r.queue <- event:
	default:
		r.log.WithField("linkId", linkID).Warn("点击队列已满，丢弃事件")
	}
}

// Close 关闭队列并等待 worker 处理完剩余事件
func (r *ClickRecorder) Close() {
	r.closeOnce.Do(func() {
		close(r.queue)
	})
	r.wg.Wait()
}

func (r *ClickRecorder) worker() {
	defer r.wg.Done()
	for event := range r.queue {
		if err := r.appender.Create(context.Background(), event); err != nil {
			r.log.WithErr(err).WithField("linkId", event.LinkID).Error("写入点击事件失败")
		}
	}
}
