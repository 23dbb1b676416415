package errorc

import (
	"fmt"
)

type Error struct {
	*ErrorCode
	Msg      string
	Cause    error
	TraceID  string
	Entry    string `json:"-"`
	FileName string `json:"-"`
	Line     int    `json:"-"`
	FuncName string `json:"-"`
}

type ErrorCode struct {
	Code int
	Name string
}

func (c *ErrorCode) String() string {
	return fmt.Sprintf("%d: %s", c.Code, c.Name)
}

var (
	ErrorCodeUnknown     *ErrorCode = &ErrorCode{500, "Unknown"}
	ErrorCodeDB          *ErrorCode = &ErrorCode{501, "DB"}
	ErrorCodeThird       *ErrorCode = &ErrorCode{502, "Third"}
	ErrorCodeValid       *ErrorCode = &ErrorCode{400, "ValidWithCtx"}
	ErrorCodeNoAuth      *ErrorCode = &ErrorCode{401, "Unauthenticated"}
	ErrorCodeForbidden   *ErrorCode = &ErrorCode{403, "Forbidden"}
	ErrorCodeNotFound    *ErrorCode = &ErrorCode{404, "NotFound"}
	ErrorCodeGone        *ErrorCode = &ErrorCode{410, "Gone"}
	ErrorCodeTooMany     *ErrorCode = &ErrorCode{429, "TooManyRequests"}
	ErrorCodeUnavailable *ErrorCode = &ErrorCode{503, "Unavailable"}
	ErrorCodeInternal    *ErrorCode = &ErrorCode{503, "InternalError"}

	// 短链访问保护相关的细分错误码：HTTP 状态一致但前端展示不同，
	// 通过 Name 区分（密码未提供 / 密码错误 / 尝试次数锁定）
	ErrorCodePasswordRequired  *ErrorCode = &ErrorCode{401, "PasswordRequired"}
	ErrorCodeIncorrectPassword *ErrorCode = &ErrorCode{401, "IncorrectPassword"}
	ErrorCodeLockedOut         *ErrorCode = &ErrorCode{403, "LockedOut"}
)
