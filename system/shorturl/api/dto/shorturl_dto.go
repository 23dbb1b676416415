package dto

import "time"

// CreateLinkRequest 创建短链接请求
type CreateLinkRequest struct {
	TargetURL      string `json:"targetUrl" validate:"required,url,max=2048" comment:"目标URL"`
	CustomSlug     string `json:"customSlug" validate:"omitempty,min=3,max=15" comment:"自定义短码"`
	Password       string `json:"password" validate:"omitempty,min=4,max=72" comment:"访问密码"`
	ExpirationDays int    `json:"expirationDays" validate:"omitempty,gt=0" comment:"过期天数"`
}

// UpdateLinkRequest 更新短链接请求，未出现的字段不修改
type UpdateLinkRequest struct {
	TargetURL      *string `json:"targetUrl" validate:"omitempty,url,max=2048" comment:"目标URL"`
	CustomSlug     *string `json:"customSlug" validate:"omitempty,min=3,max=15" comment:"自定义短码"`
	Password       *string `json:"password" validate:"omitempty,max=72" comment:"访问密码"`
	ExpirationDays *int    `json:"expirationDays" validate:"omitempty,gt=0" comment:"过期天数"`
}

// LinkDTO 短链接信息
type LinkDTO struct {
	ID             int64      `json:"id"`
	Slug           string     `json:"slug"`
	ShortURL       string     `json:"shortUrl"`
	TargetURL      string     `json:"targetUrl"`
	HasPassword    bool       `json:"hasPassword"`
	ClickCount     int64      `json:"clickCount"`
	ExpiresAt      time.Time  `json:"expiresAt"`
	LastAccessedAt *time.Time `json:"lastAccessedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// LinkPageDTO 短链接分页结果
type LinkPageDTO struct {
	Total int64      `json:"total"`
	List  []*LinkDTO `json:"list"`
}

// DailyClickDTO 按天点击数
type DailyClickDTO struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// LinkStatsDTO 短链接统计
type LinkStatsDTO struct {
	Slug           string           `json:"slug"`
	ClickCount     int64            `json:"clickCount"`
	LastAccessedAt *time.Time       `json:"lastAccessedAt"`
	DailyClicks    []*DailyClickDTO `json:"dailyClicks"`
}
