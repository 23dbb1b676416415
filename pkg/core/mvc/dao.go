package mvc

import (
	"context"
)

// IBaseDao 定义通用的数据访问接口
type IBaseDao[T any] interface {
	// Create 创建记录
	Create(ctx context.Context, entity *T) error
	// CreateBatch 批量创建记录
	CreateBatch(ctx context.Context, entities []*T) error
	// DeleteById 根据ID删除记录
	DeleteById(ctx context.Context, id interface{}) error
	// DeleteByIds 根据ID批量删除记录
	DeleteByIds(ctx context.Context, ids []interface{}) (int64, error)
	// UpdateById 根据ID更新记录
	UpdateById(ctx context.Context, id interface{}, entity *T) (int64, error)
	// FindById 根据ID查询记录
	FindById(ctx context.Context, id interface{}) (*T, error)
	// FindOneByColumn 根据指定列查询单条记录
	FindOneByColumn(ctx context.Context, column string, value interface{}) (*T, error)
	// FindByColumn 根据指定列查询记录
	FindByColumn(ctx context.Context, column string, value interface{}) ([]*T, error)
	// FindByUserId 根据用户ID查询记录
	FindByUserId(ctx context.Context, userId interface{}) ([]*T, error)
	// FindPage 分页查询
	FindPage(ctx context.Context, page *Page, condition *T) ([]*T, int64, error)
	// FindPageByMap 分页查询
	FindPageByMap(ctx context.Context, page *Page, condition map[string]interface{}) ([]*T, int64, error)
	// Count 统计记录数
	Count(ctx context.Context, condition *T) (int64, error)
	// ExistsByMap 根据多个条件判断记录是否存在
	ExistsByMap(ctx context.Context, conditions map[string]interface{}) (bool, error)
	// WithTx 使用事务创建临时的IBaseDao实例
	WithTx(tx interface{}) IBaseDao[T]
}
