package dto

import (
	apppublisher "github.com/xiebiao/bookhub/internal/application/publisher"
)

// ListPublishersRequest HTTP出版社列表请求
type ListPublishersRequest struct {
	Q       string `form:"q" example:"press"`
	Country string `form:"country" example:"United States"`
	Sort    string `form:"sort" example:"foundedYear" enums:"name,country,foundedYear,books"`
	Dir     string `form:"dir" example:"desc" enums:"asc,desc"`
	Page    string `form:"page" example:"1"`
}

// PublisherListItem HTTP出版社列表项
type PublisherListItem struct {
	ID          uint   `json:"id" example:"1"`
	Name        string `json:"name" example:"Riverstone Press"`
	Country     string `json:"country" example:"United States"`
	FoundedYear int    `json:"founded_year" example:"1978"`
	LogoURL     string `json:"logo_url"`
	Website     string `json:"website" example:"https://example.com/riverstone"`
	BookCount   int    `json:"book_count" example:"2"`
}

// PublisherDetailResponse HTTP出版社详情响应
type PublisherDetailResponse struct {
	PublisherListItem
	Description string      `json:"description"`
	Books       DetailBooks `json:"books"`
}

// NewPublisherListItems 批量转换
func NewPublisherListItems(rows []apppublisher.PublisherRow) []PublisherListItem {
	items := make([]PublisherListItem, len(rows))
	for i, row := range rows {
		p := row.Publisher
		items[i] = PublisherListItem{
			ID:          p.ID,
			Name:        p.Name,
			Country:     p.Country,
			FoundedYear: p.FoundedYear,
			LogoURL:     p.LogoURL,
			Website:     p.Website,
			BookCount:   row.BookCount,
		}
	}
	return items
}

// NewPublisherDetailResponse 由详情用例结果构建
func NewPublisherDetailResponse(r *apppublisher.GetPublisherResponse, books DetailBooks) *PublisherDetailResponse {
	item := NewPublisherListItems([]apppublisher.PublisherRow{
		{Publisher: r.Publisher, BookCount: books.Total},
	})[0]
	return &PublisherDetailResponse{
		PublisherListItem: item,
		Description:       r.Publisher.Description,
		Books:             books,
	}
}
