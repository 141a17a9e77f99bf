package fixture

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xiebiao/bookhub/internal/domain/author"
	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/publisher"
	apperrors "github.com/xiebiao/bookhub/pkg/errors"
)

// 内置数据集随二进制一起发布
//
//go:embed catalog.yaml
var builtinCatalog []byte

// Store 只读目录数据集
// 设计说明:
// 1. 启动时一次性加载并校验,之后不再修改,所有请求goroutine无锁共享
// 2. 按ID查找使用索引表,列表查询保持文件中的原顺序
// 3. 对外只通过Repository暴露,返回值都是副本
type Store struct {
	books      []book.Book
	authors    []author.Author
	publishers []publisher.Publisher

	bookIndex      map[uint]int
	authorIndex    map[uint]int
	publisherIndex map[uint]int
}

// Open 加载数据集
// path为空时使用内置数据集,否则读取指定的YAML文件
func Open(path string) (*Store, error) {
	if path == "" {
		return Load(builtinCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &apperrors.AppError{
			Code:    apperrors.ErrCodeFixtureError,
			Message: fmt.Sprintf("读取数据集文件失败: %s", path),
			Err:     err,
		}
	}
	return Load(data)
}

// Load 解码并校验数据集
// 校验规则:
// 1. 同类实体ID唯一且不为0
// 2. 每本图书的author_id、publisher_id都能找到对应记录
// 3. 实体字段合法(书名、ISBN、页数、姓名、名称)
func Load(data []byte) (*Store, error) {
	// 1. 解码(未知字段视为错误,避免拼写错误被静默忽略)
	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, &apperrors.AppError{
			Code:    apperrors.ErrCodeFixtureError,
			Message: "解析数据集失败",
			Err:     err,
		}
	}

	s := &Store{
		books:          make([]book.Book, 0, len(file.Books)),
		authors:        make([]author.Author, 0, len(file.Authors)),
		publishers:     make([]publisher.Publisher, 0, len(file.Publishers)),
		bookIndex:      make(map[uint]int, len(file.Books)),
		authorIndex:    make(map[uint]int, len(file.Authors)),
		publisherIndex: make(map[uint]int, len(file.Publishers)),
	}

	// 2. 作者
	for _, r := range file.Authors {
		a := toAuthorEntity(r)
		if err := checkID("author", a.ID, s.authorIndex); err != nil {
			return nil, err
		}
		if err := a.Validate(); err != nil {
			return nil, invalid("author", a.ID, err)
		}
		s.authorIndex[a.ID] = len(s.authors)
		s.authors = append(s.authors, a)
	}

	// 3. 出版社
	for _, r := range file.Publishers {
		p := toPublisherEntity(r)
		if err := checkID("publisher", p.ID, s.publisherIndex); err != nil {
			return nil, err
		}
		if err := p.Validate(); err != nil {
			return nil, invalid("publisher", p.ID, err)
		}
		s.publisherIndex[p.ID] = len(s.publishers)
		s.publishers = append(s.publishers, p)
	}

	// 4. 图书(依赖作者和出版社已加载)
	for _, r := range file.Books {
		b := toBookEntity(r)
		if err := checkID("book", b.ID, s.bookIndex); err != nil {
			return nil, err
		}
		if err := b.Validate(); err != nil {
			return nil, invalid("book", b.ID, err)
		}
		if _, ok := s.authorIndex[b.AuthorID]; !ok {
			return nil, apperrors.ErrFixtureError.WithDetail(
				fmt.Sprintf("book %d 引用了不存在的 author %d", b.ID, b.AuthorID))
		}
		if _, ok := s.publisherIndex[b.PublisherID]; !ok {
			return nil, apperrors.ErrFixtureError.WithDetail(
				fmt.Sprintf("book %d 引用了不存在的 publisher %d", b.ID, b.PublisherID))
		}
		s.bookIndex[b.ID] = len(s.books)
		s.books = append(s.books, b)
	}

	return s, nil
}

// Counts 返回各类实体数量
func (s *Store) Counts() (books, authors, publishers int) {
	return len(s.books), len(s.authors), len(s.publishers)
}

func checkID(kind string, id uint, index map[uint]int) error {
	if id == 0 {
		return apperrors.ErrFixtureError.WithDetail(kind + " 缺少id")
	}
	if _, dup := index[id]; dup {
		return apperrors.ErrFixtureError.WithDetail(fmt.Sprintf("%s id重复: %d", kind, id))
	}
	return nil
}

func invalid(kind string, id uint, err error) error {
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeFixtureError,
		Message: fmt.Sprintf("%s %d 数据不合法", kind, id),
		Err:     err,
	}
}
