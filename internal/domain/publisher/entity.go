package publisher

import "strings"

// Publisher 出版社实体
type Publisher struct {
	ID          uint
	Name        string // 名称
	Country     string // 所在国家(分面字段)
	FoundedYear int    // 创立年份
	Description string // 简介
	LogoURL     string // Logo URL
	Website     string // 官网
}

// Validate 校验实体字段
func (p *Publisher) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
