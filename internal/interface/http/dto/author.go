package dto

import (
	appauthor "github.com/xiebiao/bookhub/internal/application/author"
	"github.com/xiebiao/bookhub/internal/domain/author"
)

// ListAuthorsRequest HTTP作者列表请求
type ListAuthorsRequest struct {
	Q           string `form:"q" example:"british"`
	Nationality string `form:"nationality" example:"British"`
	Sort        string `form:"sort" example:"birthYear" enums:"name,birthYear,books"`
	Dir         string `form:"dir" example:"asc" enums:"asc,desc"`
	Page        string `form:"page" example:"1"`
}

// AuthorListItem HTTP作者列表项
type AuthorListItem struct {
	ID          uint   `json:"id" example:"1"`
	Name        string `json:"name" example:"Jane Austen"`
	Nationality string `json:"nationality" example:"British"`
	BirthYear   int    `json:"birth_year" example:"1775"`
	ImageURL    string `json:"image_url"`
	BookCount   int    `json:"book_count" example:"2"`
}

// AuthorDetailResponse HTTP作者详情响应
type AuthorDetailResponse struct {
	ID          uint        `json:"id" example:"1"`
	Name        string      `json:"name" example:"Jane Austen"`
	Bio         string      `json:"bio"`
	BirthYear   int         `json:"birth_year" example:"1775"`
	Nationality string      `json:"nationality" example:"British"`
	ImageURL    string      `json:"image_url"`
	Books       DetailBooks `json:"books"`
}

// NewAuthorListItems 批量转换
func NewAuthorListItems(rows []appauthor.AuthorRow) []AuthorListItem {
	items := make([]AuthorListItem, len(rows))
	for i, row := range rows {
		items[i] = newAuthorListItem(row.Author, row.BookCount)
	}
	return items
}

func newAuthorListItem(a *author.Author, bookCount int) AuthorListItem {
	return AuthorListItem{
		ID:          a.ID,
		Name:        a.Name,
		Nationality: a.Nationality,
		BirthYear:   a.BirthYear,
		ImageURL:    a.ImageURL,
		BookCount:   bookCount,
	}
}

// NewAuthorDetailResponse 由详情用例结果构建，books为已生成链接的分页图书
func NewAuthorDetailResponse(r *appauthor.GetAuthorResponse, books DetailBooks) *AuthorDetailResponse {
	return &AuthorDetailResponse{
		ID:          r.Author.ID,
		Name:        r.Author.Name,
		Bio:         r.Author.Bio,
		BirthYear:   r.Author.BirthYear,
		Nationality: r.Author.Nationality,
		ImageURL:    r.Author.ImageURL,
		Books:       books,
	}
}
