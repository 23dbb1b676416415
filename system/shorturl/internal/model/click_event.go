package model

import "time"

// ClickEvent 点击事件模型（只追加，聚合任务按 Timestamp 水位消费）
type ClickEvent struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	LinkID    int64     `gorm:"type:bigint;not null;index;comment:短链接ID" json:"linkId" comment:"短链接ID"`
	IPAddress string    `gorm:"type:varchar(45);comment:访问IP" json:"ipAddress" comment:"访问IP"`
	UserAgent string    `gorm:"type:varchar(512);comment:UA" json:"userAgent" comment:"UA"`
	Timestamp time.Time `gorm:"not null;index;comment:点击时间" json:"timestamp" comment:"点击时间"`
}

// TableName 设置表名
func (ClickEvent) TableName() string {
	return "shorturl_click_events"
}

// ClickAggregate 聚合任务的单行输出：某条链接在水位之后的点击汇总
type ClickAggregate struct {
	LinkID       int64
	Count        int64
	MaxTimestamp time.Time
}

// DailyClickCount 按天统计的点击数
type DailyClickCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}
