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

// LinkDao 短链接数据访问层
type LinkDao struct {
	mvc.IBaseDao[model.Link]
	log *logger.Log
	err *errorc.ErrorBuilder
	DB  *gorm.DB
}

// NewLinkDao 创建短链接 DAO 实例
func NewLinkDao(db *gorm.DB, log *logger.Log) *LinkDao {
	return &LinkDao{
		IBaseDao: mvc.NewGormDao[model.Link](db),
		log:      log.WithEntryName("LinkDao"),
		err:      errorc.NewErrorBuilder("LinkDao"),
		DB:       db,
	}
}

// FindBySlug 根据短码查找
func (d *LinkDao) FindBySlug(ctx context.Context, slug string) (*model.Link, error) {
	var result model.Link
	err := d.DB.WithContext(ctx).Where("slug = ?", slug).First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, d.err.New("短链接不存在", err).NotFound()
		}
		return nil, d.err.New("查询短链接失败", err).DB()
	}
	return &result, nil
}

// ExistsBySlug 检查短码是否已被占用
func (d *LinkDao) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := d.DB.WithContext(ctx).Model(&model.Link{}).
		Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, d.err.New("检查短码是否存在失败", err).DB()
	}
	return count > 0, nil
}

// IncrementClickStats 原子累加点击数并推进最后访问时间。
// click_count 只允许通过本方法修改，避免读改写竞态
func (d *LinkDao) IncrementClickStats(ctx context.Context, linkID int64, delta int64, lastAccessedAt time.Time) error {
	err := d.DB.WithContext(ctx).Model(&model.Link{}).
		Where("id = ?", linkID).
		Updates(map[string]interface{}{
			"click_count":      gorm.Expr("click_count + ?", delta),
			"last_accessed_at": lastAccessedAt,
		}).Error
	if err != nil {
		return d.err.New("更新点击统计失败", err).DB()
	}
	return nil
}

// UpdateFields 按列更新短链接。用 map 而非结构体，零值（如清空密码散列）也会写入
func (d *LinkDao) UpdateFields(ctx context.Context, linkID int64, fields map[string]interface{}) error {
	err := d.DB.WithContext(ctx).Model(&model.Link{}).
		Where("id = ?", linkID).
		Updates(fields).Error
	if err != nil {
		return d.err.New("更新短链接失败", err).DB()
	}
	return nil
}

// FindExpiredPage 查询一批已过期的短链接，按 ID 升序
func (d *LinkDao) FindExpiredPage(ctx context.Context, now time.Time, limit int) ([]*model.Link, error) {
	var results []*model.Link
	err := d.DB.WithContext(ctx).
		Where("expires_at <= ?", now).
		Order("id ASC").Limit(limit).Find(&results).Error
	if err != nil {
		return nil, d.err.New("查询过期短链接失败", err).DB()
	}
	return results, nil
}

// ListByOwnerWithPage 分页查询用户的短链接
func (d *LinkDao) ListByOwnerWithPage(ctx context.Context, ownerID int64, pageNum, pageSize int) ([]*model.Link, int64, error) {
	var results []*model.Link
	var total int64

	query := d.DB.WithContext(ctx).Model(&model.Link{}).Where("owner_id = ?", ownerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, d.err.New("统计短链接数量失败", err).DB()
	}

	offset := (pageNum - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("id DESC").Find(&results).Error
	if err != nil {
		return nil, 0, d.err.New("分页查询短链接失败", err).DB()
	}

	return results, total, nil
}
