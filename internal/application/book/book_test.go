package book

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/query"
	"github.com/xiebiao/bookhub/internal/infrastructure/persistence/fixture"
	"github.com/xiebiao/bookhub/pkg/metrics"
)

type testDeps struct {
	list    *ListBooksUseCase
	get     *GetBookUseCase
	home    *HomeUseCase
	metrics *metrics.Metrics
}

func setup(t *testing.T) testDeps {
	t.Helper()
	store, err := fixture.Open("")
	require.NoError(t, err)

	books := fixture.NewBookRepository(store)
	authors := fixture.NewAuthorRepository(store)
	publishers := fixture.NewPublisherRepository(store)
	m := metrics.New()

	list, err := NewListBooksUseCase(books, authors, publishers, 6, language.English, m)
	require.NoError(t, err)

	return testDeps{
		list:    list,
		get:     NewGetBookUseCase(books, authors, publishers),
		home:    NewHomeUseCase(books, authors, publishers),
		metrics: m,
	}
}

func titles(rows []BookRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Book.Title
	}
	return out
}

func TestListBooks_Pagination(t *testing.T) {
	deps := setup(t)
	ctx := context.Background()

	t.Run("第一页返回前6本", func(t *testing.T) {
		resp, err := deps.list.Execute(ctx, ListBooksRequest{Page: "1"})
		require.NoError(t, err)

		assert.Len(t, resp.Result.Items, 6)
		assert.Equal(t, uint(1), resp.Result.Items[0].Book.ID)
		assert.Equal(t, uint(6), resp.Result.Items[5].Book.ID)
		assert.Equal(t, 2, resp.Result.TotalPages)
		assert.Equal(t, 10, resp.Result.TotalMatching)
	})

	t.Run("第二页返回剩余4本", func(t *testing.T) {
		resp, err := deps.list.Execute(ctx, ListBooksRequest{Page: "2"})
		require.NoError(t, err)

		assert.Len(t, resp.Result.Items, 4)
		assert.Equal(t, uint(7), resp.Result.Items[0].Book.ID)
		assert.Equal(t, 2, resp.Result.CurrentPage)
	})

	t.Run("非数字页码按第一页", func(t *testing.T) {
		resp, err := deps.list.Execute(ctx, ListBooksRequest{Page: "abc"})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Result.CurrentPage)
	})
}

func TestListBooks_TextFilter(t *testing.T) {
	deps := setup(t)
	ctx := context.Background()

	resp, err := deps.list.Execute(ctx, ListBooksRequest{Query: "1984"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1984"}, titles(resp.Result.Items))
	assert.Equal(t, 1, resp.Result.TotalPages)
	assert.Equal(t, 1, resp.Result.CurrentPage)

	byAuthor, err := deps.list.Execute(ctx, ListBooksRequest{Query: "ORWELL"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1984", "Animal Farm"}, titles(byAuthor.Result.Items))
	assert.Equal(t, "George Orwell", byAuthor.Result.Items[0].AuthorName)
}

func TestListBooks_GenreFacet(t *testing.T) {
	deps := setup(t)

	resp, err := deps.list.Execute(context.Background(), ListBooksRequest{Genre: "Mystery"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Murder on the Orient Express", "And Then There Were None"}, titles(resp.Result.Items))
	assert.Equal(t, "Mystery", resp.State.Facet)
	assert.Equal(t, []string{
		query.FacetAll, "Romance", "Dystopian Fiction", "Political Satire",
		"Mystery", "Literary Fiction", "War Novel", "Modernist Literature",
	}, resp.Genres, "分面候选值基于全部图书而不是过滤结果")
}

func TestListBooks_Sort(t *testing.T) {
	deps := setup(t)
	ctx := context.Background()

	resp, err := deps.list.Execute(ctx, ListBooksRequest{Sort: "author", Page: "1"})
	require.NoError(t, err)
	assert.Equal(t, "Agatha Christie", resp.Result.Items[0].AuthorName)
	assert.Equal(t, "Murder on the Orient Express", resp.Result.Items[0].Book.Title, "同一作者保持原顺序")
	assert.Equal(t, "And Then There Were None", resp.Result.Items[1].Book.Title)

	resp, err = deps.list.Execute(ctx, ListBooksRequest{Sort: "pages", Dir: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "Emma", resp.Result.Items[0].Book.Title)

	resp, err = deps.list.Execute(ctx, ListBooksRequest{Sort: "publishedYear", Page: "2"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Result.CurrentPage)
	assert.Equal(t, "And Then There Were None", resp.Result.Items[0].Book.Title)

	_, err = deps.list.Execute(ctx, ListBooksRequest{Sort: "price"})
	assert.True(t, errors.Is(err, query.ErrUnknownSortKey))
}

func TestListBooks_ClampedPageIsCounted(t *testing.T) {
	deps := setup(t)

	resp, err := deps.list.Execute(context.Background(), ListBooksRequest{Query: "1984", Page: "99"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Result.CurrentPage)
	assert.Len(t, resp.Result.Items, 1)
	assert.True(t, resp.Result.Clamped())
}

func TestGetBook(t *testing.T) {
	deps := setup(t)
	ctx := context.Background()

	resp, err := deps.get.Execute(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "1984", resp.Book.Title)
	assert.Equal(t, "George Orwell", resp.Author.Name)
	assert.Equal(t, "Silverleaf Publishing", resp.Publisher.Name)
	require.Len(t, resp.MoreByAuthor, 1)
	assert.Equal(t, "Animal Farm", resp.MoreByAuthor[0].Title)

	_, err = deps.get.Execute(ctx, 404)
	assert.True(t, errors.Is(err, book.ErrBookNotFound))
}

func TestHome(t *testing.T) {
	deps := setup(t)

	resp, err := deps.home.Execute(context.Background())
	require.NoError(t, err)

	assert.Len(t, resp.Featured, FeaturedCount)
	assert.Equal(t, "Pride and Prejudice", resp.Featured[0].Book.Title)
	assert.Equal(t, "Jane Austen", resp.Featured[0].AuthorName)
	assert.Equal(t, HomeStats{Books: 10, Authors: 5, Publishers: 4, Genres: 7}, resp.Stats)
}

func TestListBooksRequest_Values(t *testing.T) {
	values := ListBooksRequest{Query: "emma", Genre: "Romance", Page: "2"}.Values()

	assert.Equal(t, "emma", values.Get("q"))
	assert.Equal(t, "Romance", values.Get(GenreParam))
	assert.False(t, values.Has("sort"))
}
