package services

import (
	"errors"
)

// 服务层错误类别，api层据此映射HTTP状态码
var (
	ErrValidation = errors.New("参数无效")
	ErrAuth       = errors.New("认证失败")
	ErrForbidden  = errors.New("没有权限")
	ErrNotFound   = errors.New("资源不存在")
	ErrConflict   = errors.New("资源冲突")
)
