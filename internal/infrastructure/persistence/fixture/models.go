package fixture

import (
	"github.com/xiebiao/bookhub/internal/domain/author"
	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/publisher"
)

// catalogFile 数据集文件结构
// 设计说明:
// 1. 这是infrastructure层的数据模型,只负责YAML解码
// 2. domain层实体不带yaml tag,由toXxxEntity负责转换
type catalogFile struct {
	Authors    []AuthorRecord    `yaml:"authors"`
	Publishers []PublisherRecord `yaml:"publishers"`
	Books      []BookRecord      `yaml:"books"`
}

// BookRecord 图书记录
type BookRecord struct {
	ID            uint   `yaml:"id"`
	Title         string `yaml:"title"`
	AuthorID      uint   `yaml:"author_id"`
	PublisherID   uint   `yaml:"publisher_id"`
	PublishedYear int    `yaml:"published_year"`
	Genre         string `yaml:"genre"`
	Description   string `yaml:"description"`
	CoverURL      string `yaml:"cover_url"`
	Pages         int    `yaml:"pages"`
	ISBN          string `yaml:"isbn"`
}

// AuthorRecord 作者记录
type AuthorRecord struct {
	ID          uint   `yaml:"id"`
	Name        string `yaml:"name"`
	Bio         string `yaml:"bio"`
	BirthYear   int    `yaml:"birth_year"`
	Nationality string `yaml:"nationality"`
	ImageURL    string `yaml:"image_url"`
}

// PublisherRecord 出版社记录
type PublisherRecord struct {
	ID          uint   `yaml:"id"`
	Name        string `yaml:"name"`
	Country     string `yaml:"country"`
	FoundedYear int    `yaml:"founded_year"`
	Description string `yaml:"description"`
	LogoURL     string `yaml:"logo_url"`
	Website     string `yaml:"website"`
}

func toBookEntity(r BookRecord) book.Book {
	return book.Book{
		ID:            r.ID,
		Title:         r.Title,
		AuthorID:      r.AuthorID,
		PublisherID:   r.PublisherID,
		PublishedYear: r.PublishedYear,
		Genre:         r.Genre,
		Description:   r.Description,
		CoverURL:      r.CoverURL,
		Pages:         r.Pages,
		ISBN:          r.ISBN,
	}
}

func toAuthorEntity(r AuthorRecord) author.Author {
	return author.Author{
		ID:          r.ID,
		Name:        r.Name,
		Bio:         r.Bio,
		BirthYear:   r.BirthYear,
		Nationality: r.Nationality,
		ImageURL:    r.ImageURL,
	}
}

func toPublisherEntity(r PublisherRecord) publisher.Publisher {
	return publisher.Publisher{
		ID:          r.ID,
		Name:        r.Name,
		Country:     r.Country,
		FoundedYear: r.FoundedYear,
		Description: r.Description,
		LogoURL:     r.LogoURL,
		Website:     r.Website,
	}
}
