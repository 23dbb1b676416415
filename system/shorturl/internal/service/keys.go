package service

import "strconv"

// redis 键统一在这里拼接，避免各处散落魔法字符串

// SlugCacheKey 短码解析缓存
func SlugCacheKey(slug string) string {
	return "url:slug:" + slug
}

// AnonymousCreationKey 匿名创建限流计数
func AnonymousCreationKey(ip string) string {
	return "rate_limit:url_creation:ip:" + ip
}

// UserCreationKey 用户创建限流计数
func UserCreationKey(userID int64) string {
	return "rate_limit:url_creation:user:" + strconv.FormatInt(userID, 10)
}

// RedirectKey 跳转限流计数
func RedirectKey(ip string) string {
	return "rate_limit:redirect:ip:" + ip
}

// PasswordAttemptKey 密码错误锁定计数
func PasswordAttemptKey(slug string) string {
	return "rate_limit:url_password:" + slug
}

// WatermarkKey 点击聚合水位
const WatermarkKey = "stats:lastProcessedClickTimestamp"
