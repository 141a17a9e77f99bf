package author

import "strings"

// Author 作者实体
type Author struct {
	ID          uint
	Name        string // 姓名
	Bio         string // 简介
	BirthYear   int    // 出生年份
	Nationality string // 国籍(分面字段)
	ImageURL    string // 头像URL
}

// Validate 校验实体字段
func (a *Author) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
