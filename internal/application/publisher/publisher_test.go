package publisher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/xiebiao/bookhub/internal/domain/publisher"
	"github.com/xiebiao/bookhub/internal/domain/query"
	"github.com/xiebiao/bookhub/internal/infrastructure/persistence/fixture"
	"github.com/xiebiao/bookhub/pkg/metrics"
)

func setup(t *testing.T, m *metrics.Metrics) (*ListPublishersUseCase, *GetPublisherUseCase) {
	t.Helper()
	store, err := fixture.Open("")
	require.NoError(t, err)

	publishers := fixture.NewPublisherRepository(store)
	books := fixture.NewBookRepository(store)

	list, err := NewListPublishersUseCase(publishers, books, 8, language.English, m)
	require.NoError(t, err)
	return list, NewGetPublisherUseCase(publishers, books, 2)
}

func foundedYears(rows []PublisherRow) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Publisher.FoundedYear
	}
	return out
}

func TestListPublishers(t *testing.T) {
	list, _ := setup(t, nil)
	ctx := context.Background()

	t.Run("按成立年份降序", func(t *testing.T) {
		resp, err := list.Execute(ctx, ListPublishersRequest{Sort: "foundedYear", Dir: "desc"})
		require.NoError(t, err)

		assert.Equal(t, []int{1991, 1978, 1952, 1930}, foundedYears(resp.Result.Items))
		assert.Equal(t, query.Desc, resp.State.Direction)
	})

	t.Run("默认按名称升序", func(t *testing.T) {
		resp, err := list.Execute(ctx, ListPublishersRequest{})
		require.NoError(t, err)

		require.Len(t, resp.Result.Items, 4)
		assert.Equal(t, "Mariner & Co.", resp.Result.Items[0].Publisher.Name)
		assert.Equal(t, "Sunrise House", resp.Result.Items[3].Publisher.Name)
		assert.Equal(t, []string{query.FacetAll, "United States", "United Kingdom", "Canada"}, resp.Countries)
		assert.Equal(t, []string{"name", "country", "foundedYear", "books"}, resp.SortKeys)
	})

	t.Run("页码超出范围钳制到最后一页", func(t *testing.T) {
		resp, err := list.Execute(ctx, ListPublishersRequest{Page: "99"})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.Result.TotalPages)
		assert.Equal(t, 1, resp.Result.CurrentPage)
		assert.Len(t, resp.Result.Items, 4)
		assert.True(t, resp.Result.Clamped())
	})

	t.Run("按国家分面", func(t *testing.T) {
		resp, err := list.Execute(ctx, ListPublishersRequest{Country: "United States"})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Result.TotalMatching)
	})

	t.Run("按图书数量降序", func(t *testing.T) {
		resp, err := list.Execute(ctx, ListPublishersRequest{Sort: "books", Dir: "desc"})
		require.NoError(t, err)

		assert.Equal(t, "Silverleaf Publishing", resp.Result.Items[0].Publisher.Name)
		assert.Equal(t, 5, resp.Result.Items[0].BookCount)
		assert.Equal(t, 1, resp.Result.Items[3].BookCount)
	})

	t.Run("文本搜索", func(t *testing.T) {
		resp, err := list.Execute(ctx, ListPublishersRequest{Query: "CANADA"})
		require.NoError(t, err)
		require.Len(t, resp.Result.Items, 1)
		assert.Equal(t, "Sunrise House", resp.Result.Items[0].Publisher.Name)
	})

	t.Run("未知排序字段", func(t *testing.T) {
		_, err := list.Execute(ctx, ListPublishersRequest{Sort: "revenue"})
		assert.True(t, errors.Is(err, query.ErrUnknownSortKey))
	})
}

func TestListPublishers_RecordsMetrics(t *testing.T) {
	m := metrics.New()
	list, _ := setup(t, m)

	_, err := list.Execute(context.Background(), ListPublishersRequest{Page: "5"})
	require.NoError(t, err)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	found := false
	for _, f := range families {
		if f.GetName() == "catalog_page_clamped_total" {
			found = true
			assert.Equal(t, float64(1), f.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found)
}

func TestGetPublisher(t *testing.T) {
	_, get := setup(t, nil)
	ctx := context.Background()

	resp, err := get.Execute(ctx, GetPublisherRequest{ID: 2, Page: "3"})
	require.NoError(t, err)
	assert.Equal(t, "Silverleaf Publishing", resp.Publisher.Name)
	assert.Equal(t, 5, resp.Books.TotalMatching)
	assert.Equal(t, 3, resp.Books.TotalPages)
	require.Len(t, resp.Books.Items, 1)
	assert.Equal(t, "The Old Man and the Sea", resp.Books.Items[0].Title)

	_, err = get.Execute(ctx, GetPublisherRequest{ID: 99})
	assert.True(t, errors.Is(err, publisher.ErrPublisherNotFound))
}
