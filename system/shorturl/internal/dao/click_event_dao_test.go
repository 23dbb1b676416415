package dao

import (
	"context"
	"testing"
	"time"

	"astrolink/pkg/core/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAggregateSince 按链接汇总水位之后的点击
func TestAggregateSince(t *testing.T) {
	gormDB, mock := newMockDB(t)
	eventDao := NewClickEventDao(gormDB, logger.GetLogger())

	first := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	second := time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT link_id AS link_id, COUNT(.+) AS count, MAX(.+) AS max_timestamp FROM `shorturl_click_events`").
		WillReturnRows(sqlmock.NewRows([]string{"link_id", "count", "max_timestamp"}).
			AddRow(1, 3, first).
			AddRow(2, 1, second))

	aggregates, err := eventDao.AggregateSince(context.Background(), first.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, aggregates, 2)
	assert.Equal(t, int64(1), aggregates[0].LinkID)
	assert.Equal(t, int64(3), aggregates[0].Count)
	assert.Equal(t, first, aggregates[0].MaxTimestamp)
	assert.Equal(t, int64(2), aggregates[1].LinkID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestAggregateSince_Empty 水位之后无事件时返回空结果
func TestAggregateSince_Empty(t *testing.T) {
	gormDB, mock := newMockDB(t)
	eventDao := NewClickEventDao(gormDB, logger.GetLogger())

	mock.ExpectQuery("SELECT link_id AS link_id, COUNT(.+) FROM `shorturl_click_events`").
		WillReturnRows(sqlmock.NewRows([]string{"link_id", "count", "max_timestamp"}))

	aggregates, err := eventDao.AggregateSince(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, aggregates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCountDailySince 按天统计点击数
func TestCountDailySince(t *testing.T) {
	gormDB, mock := newMockDB(t)
	eventDao := NewClickEventDao(gormDB, logger.GetLogger())

	mock.ExpectQuery("SELECT DATE(.+) AS day, COUNT(.+) AS count FROM `shorturl_click_events`").
		WithArgs(int64(7), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"day", "count"}).
			AddRow("2026-08-29", 4).
			AddRow("2026-08-30", 2))

	daily, err := eventDao.CountDailySince(context.Background(), 7, time.Now().AddDate(0, 0, -6))
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, "2026-08-29", daily[0].Day)
	assert.Equal(t, int64(4), daily[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestFindLatestByLinkId_None 无点击记录时返回 nil 而非错误
func TestFindLatestByLinkId_None(t *testing.T) {
	gormDB, mock := newMockDB(t)
	eventDao := NewClickEventDao(gormDB, logger.GetLogger())

	mock.ExpectQuery("SELECT (.+) FROM `shorturl_click_events`").
		WithArgs(int64(7), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "link_id", "ip_address", "user_agent", "timestamp"}))

	event, err := eventDao.FindLatestByLinkId(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, event)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDeleteByLinkIds 清理任务批量删除点击事件
func TestDeleteByLinkIds(t *testing.T) {
	gormDB, mock := newMockDB(t)
	eventDao := NewClickEventDao(gormDB, logger.GetLogger())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `shorturl_click_events`").
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	err := eventDao.DeleteByLinkIds(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	// 空列表直接返回，不触发 SQL
	err = eventDao.DeleteByLinkIds(context.Background(), nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
