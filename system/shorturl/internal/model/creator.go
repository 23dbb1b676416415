package model

// Creator 短链接创建者。两种形态：匿名访客（仅 IP）与已登录用户（带套餐）。
// 创建规则按形态分流，见 link_manage
type Creator interface {
	creator()
}

// AnonymousCreator 匿名创建者
type AnonymousCreator struct {
	IP string
}

func (AnonymousCreator) creator() {}

// AuthenticatedCreator 已登录创建者
type AuthenticatedCreator struct {
	UserID int64
	Plan   CreatorPlan
}

func (AuthenticatedCreator) creator() {}

// CreatorPlan 创建者套餐能力快照（由用户组件换算而来）
type CreatorPlan struct {
	DailyLinkQuota            int64
	CustomSlugAllowed         bool
	PasswordProtectionAllowed bool
	CustomExpirationAllowed   bool
	DefaultExpirationDays     int
	MaxExpirationDays         int
}

// IsUnlimited 套餐是否不限每日创建数
func (p CreatorPlan) IsUnlimited() bool {
	return p.DailyLinkQuota < 0
}
