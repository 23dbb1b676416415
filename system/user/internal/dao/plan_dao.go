package dao

import (
	"context"

	errorc "astrolink/pkg/core/err"
	"astrolink/pkg/core/logger"
	"astrolink/system/user/internal/model"

	"gorm.io/gorm"
)

// PlanDao 套餐数据访问层
type PlanDao struct {
	log *logger.Log
	err *errorc.ErrorBuilder
	DB  *gorm.DB
}

// NewPlanDao 创建套餐 DAO 实例
func NewPlanDao(db *gorm.DB, log *logger.Log) *PlanDao {
	return &PlanDao{
		log: log.WithEntryName("PlanDao"),
		err: errorc.NewErrorBuilder("PlanDao"),
		DB:  db,
	}
}

// FindById 根据ID查找套餐
func (d *PlanDao) FindById(ctx context.Context, id int64) (*model.Plan, error) {
	var result model.Plan
	err := d.DB.WithContext(ctx).Where("id = ?", id).First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, d.err.New("套餐不存在", err).NotFound()
		}
		return nil, d.err.New("查询套餐失败", err).DB()
	}
	return &result, nil
}

// FindByName 根据名称查找套餐
func (d *PlanDao) FindByName(ctx context.Context, name string) (*model.Plan, error) {
	var result model.Plan
	err := d.DB.WithContext(ctx).Where("name = ?", name).First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, d.err.New("套餐不存在", err).NotFound()
		}
		return nil, d.err.New("查询套餐失败", err).DB()
	}
	return &result, nil
}

// EnsureDefaults 确保内置套餐存在，不存在时创建
func (d *PlanDao) EnsureDefaults(ctx context.Context, plans []*model.Plan) error {
	for _, plan := range plans {
		var count int64
		if err := d.DB.WithContext(ctx).Model(&model.Plan{}).
			Where("name = ?", plan.Name).Count(&count).Error; err != nil {
			return d.err.New("查询内置套餐失败", err).DB()
		}
		if count > 0 {
			continue
		}
		if err := d.DB.WithContext(ctx).Create(plan).Error; err != nil {
			return d.err.New("创建内置套餐失败", err).DB()
		}
	}
	return nil
}
