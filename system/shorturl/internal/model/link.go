package model

import (
	"time"

	"astrolink/pkg/core/model/common"
)

// Link 短链接模型
type Link struct {
	common.Model
	Slug           string     `gorm:"type:varchar(15);not null;uniqueIndex:idx_slug;comment:短码（小写）" json:"slug" comment:"短码"`
	TargetURL      string     `gorm:"type:varchar(2048);not null;comment:目标URL" json:"targetUrl" comment:"目标URL"`
	OwnerID        *int64     `gorm:"type:bigint;index;comment:归属用户ID（NULL表示匿名）" json:"ownerId" comment:"归属用户ID"`
	ExpiresAt      time.Time  `gorm:"not null;index;comment:过期时间" json:"expiresAt" comment:"过期时间"`
	PasswordHash   string     `gorm:"type:varchar(255);comment:访问密码散列" json:"-" comment:"访问密码散列"`
	ClickCount     int64      `gorm:"type:bigint;not null;default:0;comment:点击次数" json:"clickCount" comment:"点击次数"`
	LastAccessedAt *time.Time `gorm:"comment:最后访问时间" json:"lastAccessedAt" comment:"最后访问时间"`
}

// TableName 设置表名
func (Link) TableName() string {
	return "shorturl_links"
}

// IsExpired 是否已过期
func (l *Link) IsExpired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}

// HasPassword 是否设置了访问密码
func (l *Link) HasPassword() bool {
	return l.PasswordHash != ""
}

// RemainingTTL 距离过期的剩余时长，已过期时为 0
func (l *Link) RemainingTTL(now time.Time) time.Duration {
	remaining := l.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsOwnedBy 是否归属于指定用户
func (l *Link) IsOwnedBy(userID int64) bool {
	return l.OwnerID != nil && *l.OwnerID == userID
}
