package dao

import (
	"context"

	errorc "astrolink/pkg/core/err"
	"astrolink/pkg/core/logger"
	"astrolink/pkg/core/mvc"
	"astrolink/system/user/internal/model"

	"gorm.io/gorm"
)

// UserDao 用户数据访问层
type UserDao struct {
	mvc.IBaseDao[model.User]
	log *logger.Log
	err *errorc.ErrorBuilder
	DB  *gorm.DB
}

// NewUserDao 创建用户 DAO 实例
func NewUserDao(db *gorm.DB, log *logger.Log) *UserDao {
	return &UserDao{
		IBaseDao: mvc.NewGormDao[model.User](db),
		log:      log.WithEntryName("UserDao"),
		err:      errorc.NewErrorBuilder("UserDao"),
		DB:       db,
	}
}

// FindByEmail 根据邮箱查找用户
func (d *UserDao) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var result model.User
	err := d.DB.WithContext(ctx).Where("email = ?", email).First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, d.err.New("用户不存在", err).NotFound()
		}
		return nil, d.err.New("查询用户失败", err).DB()
	}
	return &result, nil
}

// ExistsByEmail 检查邮箱是否已注册
func (d *UserDao) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := d.DB.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, d.err.New("检查邮箱是否存在失败", err).DB()
	}
	return count > 0, nil
}

// UpdatePassword 更新用户密码散列
func (d *UserDao) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	err := d.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
	if err != nil {
		return d.err.New("更新密码失败", err).DB()
	}
	return nil
}
