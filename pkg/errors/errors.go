package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，使预定义错误与WithDetail派生出的错误可以互相匹配
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithDetail 基于当前错误码派生一个带详细说明的新错误
// 预定义错误是包级变量，不能直接修改
func (e *AppError) WithDetail(detail string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message + ": " + detail,
		Err:     e.Err,
	}
}

// IsServerError 5xxxx为服务端错误，需要记录内部错误日志
func (e *AppError) IsServerError() bool {
	return e.Code >= 50000
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如配置错误、外部服务调用失败）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、未登录、资源不存在）
// - 5xxxx: 服务端错误（数据集加载失败、缓存服务异常）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal     = 50000 // 内部错误
	ErrCodeFixtureError = 50001 // 数据集错误
	ErrCodeRedisError   = 50002 // Redis错误

	// 认证错误（40100-40199）
	ErrCodeUnauthorized = 40100 // 未登录
	ErrCodeInvalidToken = 40101 // Token无效
	ErrCodeTokenExpired = 40102 // Token过期

	// 资源错误（40400-40499）
	ErrCodeBookNotFound      = 40402 // 图书不存在
	ErrCodeAuthorNotFound    = 40405 // 作者不存在
	ErrCodePublisherNotFound = 40406 // 出版社不存在

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
)

// =========================================
// 预定义错误
// =========================================

var (
	ErrInternal     = New(ErrCodeInternal, "系统内部错误")
	ErrFixtureError = New(ErrCodeFixtureError, "数据集错误")
	ErrRedisError   = New(ErrCodeRedisError, "缓存服务错误")

	ErrUnauthorized = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired = New(ErrCodeTokenExpired, "Token已过期")

	ErrBookNotFound      = New(ErrCodeBookNotFound, "图书不存在")
	ErrAuthorNotFound    = New(ErrCodeAuthorNotFound, "作者不存在")
	ErrPublisherNotFound = New(ErrCodePublisherNotFound, "出版社不存在")

	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}
