package app

import (
	"context"
	"sync"
	"testing"
	"time"

	errorc "astrolink/pkg/core/err"
	"astrolink/pkg/core/logger"
	"astrolink/pkg/kv"
	"astrolink/system/shorturl/internal/dao"
	"astrolink/system/shorturl/internal/model"
	"astrolink/system/shorturl/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/cache/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// capturedClicks 捕获点击事件，替代真实落库
type capturedClicks struct {
	mu     sync.Mutex
	events []*model.ClickEvent
}

func (c *capturedClicks) Create(ctx context.Context, event *model.ClickEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *capturedClicks) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

type fakePlanProvider struct {
	plan *model.CreatorPlan
}

func (p *fakePlanProvider) GetCreatorPlan(ctx context.Context, userID int64) (*model.CreatorPlan, error) {
	return p.plan, nil
}

type testApp struct {
	*App
	mock   sqlmock.Sqlmock
	store  *kv.MemoryStore
	clicks *capturedClicks
}

// newTestApp 用 sqlmock、纯本地缓存和内存 KV 组装应用层
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := logger.GetLogger().WithEntryName("ShortURLAppTest")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	linkDao := dao.NewLinkDao(gormDB, log)
	clickEventDao := dao.NewClickEventDao(gormDB, log)

	store := kv.NewMemoryStore()
	clicks := &capturedClicks{}
	recorder := service.NewClickRecorder(clicks, log)
	t.Cleanup(recorder.Close)

	localCache := cache.New(&cache.Options{
		LocalCache: cache.NewTinyLFU(1000, time.Minute),
	})

	a := &App{
		LinkService:       service.NewLinkService(linkDao, log),
		ProtectionService: service.NewProtectionService(store, log),
		RateLimiter:       service.NewRateLimiter(store, log),
		ClickRecorder:     recorder,
		LinkDao:           linkDao,
		ClickEventDao:     clickEventDao,
		cache:             localCache,
		store:             store,
		plans:             &fakePlanProvider{},
		log:               log,
		err:               errorc.NewErrorBuilder("ShortURLApp"),
	}

	return &testApp{App: a, mock: mock, store: store, clicks: clicks}
}

func (ta *testApp) linkRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "deleted_at",
		"slug", "target_url", "owner_id", "expires_at",
		"password_hash", "click_count", "last_accessed_at",
	})
}

// waitClicks 等待异步点击队列消费完毕
func (ta *testApp) waitClicks(t *testing.T, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ta.clicks.count() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("等待点击事件超时，期望 %d 条，实际 %d 条", want, ta.clicks.count())
}
