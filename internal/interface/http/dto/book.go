package dto

import (
	appbook "github.com/xiebiao/bookhub/internal/application/book"
	"github.com/xiebiao/bookhub/internal/domain/book"
)

// ListBooksRequest HTTP图书列表请求
// 所有参数按原始字符串绑定，规范化(页码、方向、排序字段校验)由查询管道完成
type ListBooksRequest struct {
	Q     string `form:"q" example:"orwell"`
	Genre string `form:"genre" example:"Mystery"`
	Sort  string `form:"sort" example:"publishedYear" enums:"title,author,publishedYear,pages"`
	Dir   string `form:"dir" example:"desc" enums:"asc,desc"`
	Page  string `form:"page" example:"1"`
}

// BookListItem HTTP图书列表项
// 列表不返回Description
type BookListItem struct {
	ID            uint   `json:"id" example:"3"`
	Title         string `json:"title" example:"1984"`
	AuthorID      uint   `json:"author_id" example:"2"`
	Author        string `json:"author" example:"George Orwell"`
	PublisherID   uint   `json:"publisher_id" example:"2"`
	Publisher     string `json:"publisher" example:"Silverleaf Publishing"`
	PublishedYear int    `json:"published_year" example:"1949"`
	Genre         string `json:"genre" example:"Dystopian Fiction"`
	Pages         int    `json:"pages" example:"328"`
	ISBN          string `json:"isbn" example:"978-0452284234"`
	CoverURL      string `json:"cover_url"`
}

// BookSummary 不带作者、出版社名称的图书摘要(详情页中的图书列表)
type BookSummary struct {
	ID            uint   `json:"id" example:"1"`
	Title         string `json:"title" example:"Pride and Prejudice"`
	PublishedYear int    `json:"published_year" example:"1813"`
	Genre         string `json:"genre" example:"Romance"`
	CoverURL      string `json:"cover_url"`
}

// BookDetailResponse HTTP图书详情响应
type BookDetailResponse struct {
	BookListItem
	Description   string         `json:"description"`
	AuthorInfo    AuthorBrief    `json:"author_info"`
	PublisherInfo PublisherBrief `json:"publisher_info"`
	MoreByAuthor  []BookSummary  `json:"more_by_author"`
}

// AuthorBrief 图书详情中的作者信息
type AuthorBrief struct {
	ID          uint   `json:"id" example:"2"`
	Name        string `json:"name" example:"George Orwell"`
	Nationality string `json:"nationality" example:"British"`
	ImageURL    string `json:"image_url"`
}

// PublisherBrief 图书详情中的出版社信息
type PublisherBrief struct {
	ID      uint   `json:"id" example:"2"`
	Name    string `json:"name" example:"Silverleaf Publishing"`
	Country string `json:"country" example:"United Kingdom"`
}

// HomeResponse HTTP首页响应
type HomeResponse struct {
	Featured []BookListItem `json:"featured"`
	Stats    HomeStats      `json:"stats"`
}

// HomeStats 目录统计
type HomeStats struct {
	Books      int `json:"books" example:"10"`
	Authors    int `json:"authors" example:"5"`
	Publishers int `json:"publishers" example:"4"`
	Genres     int `json:"genres" example:"7"`
}

// NewBookListItem 由列表行构建
func NewBookListItem(row appbook.BookRow) BookListItem {
	b := row.Book
	return BookListItem{
		ID:            b.ID,
		Title:         b.Title,
		AuthorID:      b.AuthorID,
		Author:        row.AuthorName,
		PublisherID:   b.PublisherID,
		Publisher:     row.PublisherName,
		PublishedYear: b.PublishedYear,
		Genre:         b.Genre,
		Pages:         b.Pages,
		ISBN:          b.ISBN,
		CoverURL:      b.CoverURL,
	}
}

// NewBookListItems 批量转换
func NewBookListItems(rows []appbook.BookRow) []BookListItem {
	items := make([]BookListItem, len(rows))
	for i, row := range rows {
		items[i] = NewBookListItem(row)
	}
	return items
}

// NewBookSummaries 批量转换为图书摘要
func NewBookSummaries(books []*book.Book) []BookSummary {
	items := make([]BookSummary, len(books))
	for i, b := range books {
		items[i] = BookSummary{
			ID:            b.ID,
			Title:         b.Title,
			PublishedYear: b.PublishedYear,
			Genre:         b.Genre,
			CoverURL:      b.CoverURL,
		}
	}
	return items
}

// NewBookDetailResponse 由详情用例结果构建
func NewBookDetailResponse(r *appbook.GetBookResponse) *BookDetailResponse {
	return &BookDetailResponse{
		BookListItem: NewBookListItem(appbook.BookRow{
			Book:          r.Book,
			AuthorName:    r.Author.Name,
			PublisherName: r.Publisher.Name,
		}),
		Description: r.Book.Description,
		AuthorInfo: AuthorBrief{
			ID:          r.Author.ID,
			Name:        r.Author.Name,
			Nationality: r.Author.Nationality,
			ImageURL:    r.Author.ImageURL,
		},
		PublisherInfo: PublisherBrief{
			ID:      r.Publisher.ID,
			Name:    r.Publisher.Name,
			Country: r.Publisher.Country,
		},
		MoreByAuthor: NewBookSummaries(r.MoreByAuthor),
	}
}

// NewHomeResponse 由首页用例结果构建
func NewHomeResponse(r *appbook.HomeResponse) *HomeResponse {
	return &HomeResponse{
		Featured: NewBookListItems(r.Featured),
		Stats: HomeStats{
			Books:      r.Stats.Books,
			Authors:    r.Stats.Authors,
			Publishers: r.Stats.Publishers,
			Genres:     r.Stats.Genres,
		},
	}
}
