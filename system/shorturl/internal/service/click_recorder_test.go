package service

import (
	"context"
	"sync"
	"testing"

	"astrolink/pkg/core/logger"
	"astrolink/system/shorturl/internal/model"
)

type memoryAppender struct {
	mu     sync.Mutex
	events []*model.ClickEvent
	gate   chan struct{} // 非 nil 时 worker 阻塞在这里
}

func (a *memoryAppender) Create(ctx context.Context, event *model.ClickEvent) error {
	if a.gate != nil {
		<-a.gate
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
	return nil
}

func (a *memoryAppender) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.events)
}

// TestClickRecorder_RecordAndDrain 投递的事件在 Close 时全部落库
func TestClickRecorder_RecordAndDrain(t *testing.T) {
	appender := &memoryAppender{}
	recorder := NewClickRecorder(appender, logger.GetLogger())

	for i := 0; i < 100; i++ {
		recorder.Record(int64(i), "1.2.3.4", "test-agent")
	}
	recorder.Close()

	if appender.count() != 100 {
		t.Fatalf("应落库 100 条事件，实际 %d", appender.count())
	}
}

// TestClickRecorder_EventFields 事件字段完整，时间戳非零
func TestClickRecorder_EventFields(t *testing.T) {
	appender := &memoryAppender{}
	recorder := NewClickRecorder(appender, logger.GetLogger())

	recorder.Record(7, "9.9.9.9", "curl/8.0")
	recorder.Close()

	if appender.count() != 1 {
		t.Fatalf("应落库 1 条事件，实际 %d", appender.count())
	}
	event := appender.events[0]
	if event.LinkID != 7 || event.IPAddress != "9.9.9.9" || event.UserAgent != "curl/8.0" {
		t.Fatalf("事件字段不完整: %+v", event)
	}
	if event.Timestamp.IsZero() {
		t.Fatal("事件时间戳不应为零值")
	}
}

// TestClickRecorder_FullQueueDrops 队列满时丢弃事件，Record 不阻塞
func TestClickRecorder_FullQueueDrops(t *testing.T) {
	gate := make(chan struct{})
	appender := &memoryAppender{gate: gate}
	recorder := NewClickRecorder(appender, logger.GetLogger())

	// worker 全部阻塞，灌满队列后继续投递应被丢弃而非阻塞
	total := clickQueueSize + clickWorkerCount + 50
	for i := 0; i < total; i++ {
		recorder.Record(int64(i), "1.2.3.4", "test-agent")
	}

	close(gate)
	recorder.Close()

	if appender.count() > clickQueueSize+clickWorkerCount {
		t.Fatalf("落库数量不应超过队列容量加在途 worker 数，实际 %d", appender.count())
	}
	if appender.count() == 0 {
		t.Fatal("队列内事件应正常落库")
	}
}
