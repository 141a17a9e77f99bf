package publisher

import (
	apperrors "github.com/xiebiao/bookhub/pkg/errors"
)

// 出版社领域错误定义
var (
	// ErrPublisherNotFound 出版社不存在
	ErrPublisherNotFound = apperrors.ErrPublisherNotFound

	// ErrInvalidName 出版社名称为空
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "出版社名称不能为空")
)
