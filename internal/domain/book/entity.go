package book

import (
	"regexp"
	"strings"
)

// Book 图书实体
// 设计说明:
// 1. 图书通过AuthorID/PublisherID引用作者和出版社,不冗余保存名称
// 2. 目录数据启动时加载后只读,实体上没有修改行为
// 3. 反向关系(作者的图书、出版社的图书)每次查询时扫描计算,不在实体上缓存
type Book struct {
	ID            uint
	Title         string // 书名
	AuthorID      uint   // 作者ID(关联Author)
	PublisherID   uint   // 出版社ID(关联Publisher)
	PublishedYear int    // 出版年份
	Genre         string // 类型(分面字段)
	Description   string // 简介
	CoverURL      string // 封面图片URL
	Pages         int    // 页数
	ISBN          string // ISBN号
}

// Validate 校验实体字段
// 业务规则:
// - 书名不能为空
// - ISBN格式必须合法(10位或13位数字,允许连字符)
// - 页数必须>0
func (b *Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrInvalidTitle
	}
	if !isValidISBN(b.ISBN) {
		return ErrInvalidISBN.WithDetail(b.ISBN)
	}
	if b.Pages <= 0 {
		return ErrInvalidPages
	}
	return nil
}

// WrittenBy 是否由指定作者创作
func (b *Book) WrittenBy(authorID uint) bool {
	return b.AuthorID == authorID
}

// PublishedBy 是否由指定出版社出版
func (b *Book) PublishedBy(publisherID uint) bool {
	return b.PublisherID == publisherID
}

var nonDigit = regexp.MustCompile(`[^0-9]`)

// isValidISBN 校验ISBN格式
// 去除分隔符后(如978-0141439518 → 9780141439518)只检查位数,不校验校验位
func isValidISBN(isbn string) bool {
	clean := nonDigit.ReplaceAllString(isbn, "")
	return len(clean) == 10 || len(clean) == 13
}
