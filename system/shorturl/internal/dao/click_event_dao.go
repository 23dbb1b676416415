package dao

import (
	"context"
	"time"

	errorc "astrolink/pkg/core/err"
	"astrolink/pkg/core/logger"
	"astrolink/pkg/core/mvc"
	"astrolink/system/shorturl/internal/model"

	"gorm.io/gorm"
)

// ClickEventDao 点击事件数据访问层
type ClickEventDao struct {
	mvc.IBaseDao[model.ClickEvent]
	log *logger.Log
	err *errorc.ErrorBuilder
	DB  *gorm.DB
}

// NewClickEventDao 创建点击事件 DAO 实例
func NewClickEventDao(db *gorm.DB, log *logger.Log) *ClickEventDao {
	return &ClickEventDao{
		IBaseDao: mvc.NewGormDao[model.ClickEvent](db),
		log:      log.WithEntryName("ClickEventDao"),
		err:      errorc.NewErrorBuilder("ClickEventDao"),
		DB:       db,
	}
}

// AggregateSince 按链接汇总水位之后的点击事件
func (d *ClickEventDao) AggregateSince(ctx context.Context, watermark time.Time) ([]*model.ClickAggregate, error) {
	var results []*model.ClickAggregate
	err := d.DB.WithContext(ctx).Model(&model.ClickEvent{}).
		Select("link_id AS link_id, COUNT(*) AS count, MAX(timestamp) AS max_timestamp").
		Where("timestamp > ?", watermark).
		Group("link_id").
		Scan(&results).Error
	if err != nil {
		return nil, d.err.New("聚合点击事件失败", err).DB()
	}
	return results, nil
}

// CountDailySince 按天统计某条链接在起始时间之后的点击数
func (d *ClickEventDao) CountDailySince(ctx context.Context, linkID int64, since time.Time) ([]*model.DailyClickCount, error) {
	var results []*model.DailyClickCount
	err := d.DB.WithContext(ctx).Model(&model.ClickEvent{}).
		Select("DATE(timestamp) AS day, COUNT(*) AS count").
		Where("link_id = ? AND timestamp >= ?", linkID, since).
		Group("DATE(timestamp)").
		Order("day ASC").
		Scan(&results).Error
	if err != nil {
		return nil, d.err.New("按天统计点击失败", err).DB()
	}
	return results, nil
}

// FindLatestByLinkId 查询某条链接最近一次点击，无点击时返回 nil
func (d *ClickEventDao) FindLatestByLinkId(ctx context.Context, linkID int64) (*model.ClickEvent, error) {
	var result model.ClickEvent
	err := d.DB.WithContext(ctx).Where("link_id = ?", linkID).
		Order("timestamp DESC").First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, d.err.New("查询最近点击失败", err).DB()
	}
	return &result, nil
}

// DeleteByLinkIds 删除指定链接的点击事件（清理任务用）
func (d *ClickEventDao) DeleteByLinkIds(ctx context.Context, linkIDs []int64) error {
	if len(linkIDs) == 0 {
		return nil
	}
	err := d.DB.WithContext(ctx).Where("link_id IN ?", linkIDs).
		Delete(&model.ClickEvent{}).Error
	if err != nil {
		return d.err.New("删除点击事件失败", err).DB()
	}
	return nil
}
