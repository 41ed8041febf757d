// Package errs 定义业务错误分类，调用方通过 errors.Is 判断类别。
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrDuplicate    = errors.New("already exists")
	ErrAuth         = errors.New("invalid credentials")
	ErrUnauthorized = errors.New("login required")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// Validation 包装一个输入校验错误
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound 包装一个资源不存在错误
func NotFound(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// Forbidden 包装一个越权错误
func Forbidden(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}
