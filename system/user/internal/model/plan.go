package model

// Plan 套餐数据库模型，约束用户创建短链接时的能力
type Plan struct {
	ID                        int64  `gorm:"primaryKey" json:"id"`
	Name                      string `gorm:"uniqueIndex;size:100;not null" json:"name" comment:"套餐名"`
	DailyLinkQuota            int64  `gorm:"not null;default:50;comment:每日创建上限，-1表示不限" json:"dailyLinkQuota"`
	CustomSlugAllowed         bool   `gorm:"not null;default:false" json:"customSlugAllowed" comment:"是否允许自定义短码"`
	PasswordProtectionAllowed bool   `gorm:"not null;default:false" json:"passwordProtectionAllowed" comment:"是否允许密码保护"`
	CustomExpirationAllowed   bool   `gorm:"not null;default:false" json:"customExpirationAllowed" comment:"是否允许自定义过期时间"`
	DefaultExpirationDays     int    `gorm:"not null;default:30" json:"defaultExpirationDays" comment:"默认过期天数"`
	MaxExpirationDays         int    `gorm:"not null;default:365" json:"maxExpirationDays" comment:"最大过期天数"`
}

// TableName 指定表名
func (Plan) TableName() string {
	return "plans"
}

// IsUnlimited 是否为不限量套餐
func (p *Plan) IsUnlimited() bool {
	return p.DailyLinkQuota < 0
}

// DefaultPlanName 注册用户的默认套餐
const DefaultPlanName = "FREE"
