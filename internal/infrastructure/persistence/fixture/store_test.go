package fixture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookhub/internal/domain/author"
	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/publisher"
	apperrors "github.com/xiebiao/bookhub/pkg/errors"
)

func openBuiltin(t *testing.T) *Store {
	t.Helper()
	store, err := Open("")
	require.NoError(t, err)
	return store
}

func TestOpen_Builtin(t *testing.T) {
	store := openBuiltin(t)

	books, authors, publishers := store.Counts()
	assert.Equal(t, 10, books)
	assert.Equal(t, 5, authors)
	assert.Equal(t, 4, publishers)
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
authors:
  - {id: 7, name: Toni Morrison, birth_year: 1931, nationality: American}
publishers:
  - {id: 3, name: Knopf, country: United States, founded_year: 1915}
books:
  - {id: 42, title: Beloved, author_id: 7, publisher_id: 3, published_year: 1987, genre: Historical, pages: 324, isbn: 978-1400033416}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	store, err := Open(path)
	require.NoError(t, err)

	b, err := NewBookRepository(store).FindByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Beloved", b.Title)
	assert.Equal(t, uint(7), b.AuthorID)

	_, err = Open(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, apperrors.ErrFixtureError))
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "图书引用不存在的作者",
			data: `
authors: [{id: 1, name: A}]
publishers: [{id: 1, name: P}]
books: [{id: 1, title: T, author_id: 2, publisher_id: 1, pages: 10, isbn: "1234567890"}]
`,
		},
		{
			name: "图书引用不存在的出版社",
			data: `
authors: [{id: 1, name: A}]
publishers: [{id: 1, name: P}]
books: [{id: 1, title: T, author_id: 1, publisher_id: 9, pages: 10, isbn: "1234567890"}]
`,
		},
		{
			name: "作者ID重复",
			data: `
authors: [{id: 1, name: A}, {id: 1, name: B}]
`,
		},
		{
			name: "缺少ID",
			data: `
publishers: [{name: P}]
`,
		},
		{
			name: "ISBN格式错误",
			data: `
authors: [{id: 1, name: A}]
publishers: [{id: 1, name: P}]
books: [{id: 1, title: T, author_id: 1, publisher_id: 1, pages: 10, isbn: "12"}]
`,
		},
		{
			name: "未知字段",
			data: `
authors: [{id: 1, name: A, price: 10}]
`,
		},
		{
			name: "YAML格式错误",
			data: "authors: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.data))
			require.Error(t, err)

			appErr := apperrors.GetAppError(err)
			assert.Equal(t, apperrors.ErrCodeFixtureError, appErr.Code)
			t.Logf("✓ %v", err)
		})
	}
}

func TestBookRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(openBuiltin(t))

	t.Run("List保持数据集顺序", func(t *testing.T) {
		books, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, books, 10)
		assert.Equal(t, "Pride and Prejudice", books[0].Title)
		assert.Equal(t, "To the Lighthouse", books[9].Title)
	})

	t.Run("返回副本", func(t *testing.T) {
		books, err := repo.List(ctx)
		require.NoError(t, err)
		books[0].Title = "changed"
		books[0], books[1] = books[1], books[0]

		again, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Pride and Prejudice", again[0].Title)
	})

	t.Run("FindByID", func(t *testing.T) {
		b, err := repo.FindByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "1984", b.Title)
		assert.Equal(t, "Dystopian Fiction", b.Genre)

		_, err = repo.FindByID(ctx, 999)
		assert.True(t, errors.Is(err, book.ErrBookNotFound))
	})

	t.Run("按作者查询", func(t *testing.T) {
		books, err := repo.ListByAuthorID(ctx, 4)
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "The Old Man and the Sea", books[0].Title)
		assert.Equal(t, "A Farewell to Arms", books[1].Title)
	})

	t.Run("按出版社查询", func(t *testing.T) {
		books, err := repo.ListByPublisherID(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, books, 5)

		none, err := repo.ListByPublisherID(ctx, 99)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("上下文取消", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := repo.List(cancelled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestAuthorAndPublisherRepository(t *testing.T) {
	ctx := context.Background()
	store := openBuiltin(t)

	authors := NewAuthorRepository(store)
	a, err := authors.FindByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Virginia Woolf", a.Name)
	assert.Equal(t, 1882, a.BirthYear)

	_, err = authors.FindByID(ctx, 0)
	assert.True(t, errors.Is(err, author.ErrAuthorNotFound))

	all, err := authors.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	publishers := NewPublisherRepository(store)
	p, err := publishers.FindByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Mariner & Co.", p.Name)
	assert.Equal(t, "https://example.com/mariner", p.Website)

	_, err = publishers.FindByID(ctx, 5)
	assert.True(t, errors.Is(err, publisher.ErrPublisherNotFound))
}
