package errorc

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"astrolink/pkg/core/consts"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ErrorBuilder struct {
	entryName string
}

func NewErrorBuilder(entryName string) *ErrorBuilder {
	return &ErrorBuilder{entryName: entryName}
}

func (e *ErrorBuilder) New(msg string, err error) *Error {
	stack := getStackOptimized(2)
	stack.Msg = msg
	stack.Cause = err
	stack.Entry = e.entryName
	stack.ErrorCode = getErrCode(err)
	return stack
}

// New err or msg can nil
func New(msg string, err error) *Error {
	stack := getStackOptimized(2)
	stack.Msg = msg
	stack.Cause = err
	stack.ErrorCode = getErrCode(err)
	return stack
}

func (e *Error) WithTraceID(ctx context.Context) *Error {
	var traceID string
	if ctx != nil {
		if uuid, ok := ctx.Value(consts.TraceKey).(string); ok {
			traceID = uuid
		}
	}
	e.TraceID = traceID
	return e
}

func (e *Error) WithEntry(entry string) *Error {
	e.Entry = entry
	return e
}

func (e *Error) WithCode(code *ErrorCode) *Error {
	e.ErrorCode = code
	return e
}

func (e *Error) DB() *Error {
	if e.Code == 404 {
		return e
	}
	e.ErrorCode = ErrorCodeDB
	return e
}

func (e *Error) Third() *Error {
	e.ErrorCode = ErrorCodeThird
	return e
}

func (e *Error) ValidWithCtx() *Error {
	e.ErrorCode = ErrorCodeValid
	return e
}

func (e *Error) NoAuth() *Error {
	e.ErrorCode = ErrorCodeNoAuth
	return e
}

func (e *Error) Forbidden() *Error {
	e.ErrorCode = ErrorCodeForbidden
	return e
}

func (e *Error) NotFound() *Error {
	e.ErrorCode = ErrorCodeNotFound
	return e
}

func (e *Error) Gone() *Error {
	e.ErrorCode = ErrorCodeGone
	return e
}

func (e *Error) TooMany() *Error {
	e.ErrorCode = ErrorCodeTooMany
	return e
}

func (e *Error) Unavailable() *Error {
	e.ErrorCode = ErrorCodeUnavailable
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	// 1. 收集错误链
	var errChain []*Error
	currErr := e
	for {
		errChain = append(errChain, currErr)
		if cause, ok := currErr.Cause.(*Error); ok {
			currErr = cause
		} else {
			break
		}
	}

	// 2. 查找根因错误（第一个包装了非 *Error 错误的 Error）
	var rootCause *Error
	var originalError error
	for i := len(errChain) - 1; i >= 0; i-- {
		err := errChain[i]
		if err.Cause != nil {
			if _, ok := err.Cause.(*Error); !ok {
				rootCause = err
				originalError = err.Cause
				break
			}
		}
	}
	if rootCause == nil && len(errChain) > 0 {
		rootCause = errChain[len(errChain)-1]
		originalError = rootCause.Cause
	}

	// 3. 构建格式化的错误信息
	var sb strings.Builder
	sb.WriteString(rootCause.Msg)
	if originalError != nil {
		sb.WriteString(fmt.Sprintf(": %v", originalError))
	}
	if rootCause.FileName != "" {
		sb.WriteString(fmt.Sprintf(" at %s:%d", rootCause.FileName, rootCause.Line))
	}
	if len(errChain) > 1 {
		sb.WriteString(" [")
		for i, err := range errChain {
			if i > 0 {
				sb.WriteString(" <- ")
			}
			sb.WriteString(err.Msg)
		}
		sb.WriteString("]")
	}

	return sb.String()
}

// RootCause returns a simple string representing the root cause of the error.
func (e *Error) RootCause() string {
	if e == nil {
		return ""
	}

	currErr := e
	for {
		if cause, ok := currErr.Cause.(*Error); ok {
			currErr = cause
		} else {
			break
		}
	}

	var sb strings.Builder
	sb.WriteString(currErr.Msg)
	if currErr.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", currErr.Cause))
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ToLog 将错误打印到日志并返回自身，便于在控制器中一行完成记录与抛出
func (e *Error) ToLog(log *logrus.Entry, msgs ...string) *Error {
	if e == nil {
		return nil
	}

	entry := log.WithField("Entry", e.Entry)
	if e.TraceID != "" {
		entry = entry.WithField("TraceId", e.TraceID)
	}
	if e.FileName != "" {
		entry = entry.WithField("Location", fmt.Sprintf("%s:%d", e.FileName, e.Line))
	}

	msg := e.Error()
	if len(msgs) > 0 {
		msg = strings.Join(msgs, "; ") + ": " + msg
	}
	entry.Error(msg)
	return e
}

func getStackOptimized(num int) *Error {
	// 获取调用栈信息（轻量级操作）
	pc, file, line, ok := runtime.Caller(num)
	if !ok {
		return &Error{
			FileName: "<unknown>",
			Line:     0,
			FuncName: "<unknown>",
		}
	}

	var funcName string
	if details := runtime.FuncForPC(pc); details != nil {
		funcName = details.Name()
	} else {
		funcName = "<unknown>"
	}

	return &Error{
		FileName: file,
		Line:     line,
		FuncName: funcName,
	}
}

func getErrCode(err error) *ErrorCode {
	if err == nil {
		return ErrorCodeUnknown
	}

	for _, e := range notfounds {
		if errors.Is(err, e) {
			return ErrorCodeNotFound
		}
	}

	return ErrorCodeUnknown
}

var notfounds = []error{gorm.ErrRecordNotFound, redis.Nil}

// 快速构造函数 - 不获取堆栈信息，适用于性能敏感场景
func (e *ErrorBuilder) Quick(msg string, err error) *Error {
	return &Error{
		Msg:       msg,
		Cause:     err,
		Entry:     e.entryName,
		ErrorCode: getErrCode(err),
	}
}

// 快速构造函数 - 全局版本
func Quick(msg string, err error) *Error {
	return &Error{
		Msg:       msg,
		Cause:     err,
		ErrorCode: getErrCode(err),
	}
}

func ParseError(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	// Use errors.As to check if an *Error already exists in the chain.
	if errors.As(err, &e) {
		return e
	}

	// If not, wrap the original error.
	return Quick("", err)
}

func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var e *Error
	if errors.As(err, &e) {
		if e.ErrorCode == ErrorCodeNotFound {
			return true
		}
	}

	for _, target := range notfounds {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// IsCode 判断错误链中是否携带指定错误码
func IsCode(err error, code *ErrorCode) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ErrorCode == code
	}
	return false
}
