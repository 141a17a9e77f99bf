package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	appauthor "github.com/xiebiao/bookhub/internal/application/author"
	appbook "github.com/xiebiao/bookhub/internal/application/book"
	apppublisher "github.com/xiebiao/bookhub/internal/application/publisher"
	appsession "github.com/xiebiao/bookhub/internal/application/session"
	"github.com/xiebiao/bookhub/internal/domain/session"
	"github.com/xiebiao/bookhub/internal/infrastructure/config"
	"github.com/xiebiao/bookhub/internal/infrastructure/persistence/fixture"
	"github.com/xiebiao/bookhub/internal/interface/http/handler"
	"github.com/xiebiao/bookhub/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookhub/pkg/errors"
	"github.com/xiebiao/bookhub/pkg/jwt"
	"github.com/xiebiao/bookhub/pkg/metrics"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type listData struct {
	List       []map[string]interface{} `json:"list"`
	Total      int                      `json:"total"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"page_size"`
	TotalPages int                      `json:"total_pages"`
	Query      struct {
		Facet string `json:"facet"`
		Sort  string `json:"sort"`
		Dir   string `json:"dir"`
		Page  int    `json:"page"`
	} `json:"query"`
	Pagination struct {
		Prev struct {
			Href     string `json:"href"`
			Disabled bool   `json:"disabled"`
		} `json:"prev"`
		Next struct {
			Href     string `json:"href"`
			Disabled bool   `json:"disabled"`
		} `json:"next"`
		Pages []struct {
			Page    int    `json:"page"`
			Href    string `json:"href"`
			Current bool   `json:"current"`
		} `json:"pages"`
	} `json:"pagination"`
	SortLinks []struct {
		Key    string `json:"key"`
		Href   string `json:"href"`
		Active bool   `json:"active"`
	} `json:"sort_links"`
	Facets []struct {
		Value  string `json:"value"`
		Href   string `json:"href"`
		Active bool   `json:"active"`
	} `json:"facets"`
}

// memoryRevocations 测试用的内存吊销列表
type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (m *memoryRevocations) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = true
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[tokenID], nil
}

// failingRevocations 模拟Redis不可用：吊销总是失败，查询正常
type failingRevocations struct{}

func (failingRevocations) Revoke(context.Context, string, time.Duration) error {
	return apperrors.ErrRedisError.WithDetail("connection refused")
}

func (failingRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, nil
}

func newTestRouter(t *testing.T, authMode string) (*gin.Engine, *metrics.Metrics) {
	t.Helper()
	return newTestRouterWith(t, authMode, &memoryRevocations{revoked: make(map[string]bool)})
}

func newTestRouterWith(t *testing.T, authMode string, revocations session.RevocationList) (*gin.Engine, *metrics.Metrics) {
	t.Helper()

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Server.Mode = gin.TestMode
	cfg.Auth.Mode = authMode

	store, err := fixture.Open("")
	require.NoError(t, err)
	books := fixture.NewBookRepository(store)
	authors := fixture.NewAuthorRepository(store)
	publishers := fixture.NewPublisherRepository(store)

	m := metrics.New()
	sizes := cfg.Catalog.PageSize

	listBooks, err := appbook.NewListBooksUseCase(books, authors, publishers, sizes.Books, language.English, m)
	require.NoError(t, err)
	listAuthors, err := appauthor.NewListAuthorsUseCase(authors, books, sizes.Authors, language.English, m)
	require.NoError(t, err)
	listPublishers, err := apppublisher.NewListPublishersUseCase(publishers, books, sizes.Publishers, language.English, m)
	require.NoError(t, err)

	jwtManager := jwt.NewManager("router-test-secret", time.Hour)

	h := Handlers{
		Book: handler.NewBookHandler(listBooks,
			appbook.NewGetBookUseCase(books, authors, publishers),
			appbook.NewHomeUseCase(books, authors, publishers)),
		Author: handler.NewAuthorHandler(listAuthors,
			appauthor.NewGetAuthorUseCase(authors, books, sizes.Detail)),
		Publisher: handler.NewPublisherHandler(listPublishers,
			apppublisher.NewGetPublisherUseCase(publishers, books, sizes.Detail)),
		Session: handler.NewSessionHandler(cfg.Auth,
			appsession.NewLoginUseCase(cfg.Auth, jwtManager),
			appsession.NewLogoutUseCase(cfg.Auth, jwtManager, revocations)),
	}
	auth := middleware.CookieAuthenticator(cfg.Auth.CookieName,
		appsession.NewVerifier(cfg.Auth, jwtManager, revocations))

	return New(cfg, zap.NewNop(), m, auth, h), m
}

func do(r http.Handler, method, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

var loggedIn = &http.Cookie{Name: "bookhub_auth", Value: "1"}

func TestPublicRoutes(t *testing.T) {
	r, _ := newTestRouter(t, config.AuthModeFlag)

	t.Run("健康检查", func(t *testing.T) {
		w := do(r, http.MethodGet, "/ping")
		env := decode(t, w, nil)
		assert.Equal(t, 0, env.Code)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("首页无需登录", func(t *testing.T) {
		var data struct {
			Featured []map[string]interface{} `json:"featured"`
			Stats    map[string]int           `json:"stats"`
		}
		env := decode(t, do(r, http.MethodGet, "/api/v1/home"), &data)

		assert.Equal(t, 0, env.Code)
		assert.Len(t, data.Featured, 6)
		assert.Equal(t, map[string]int{"books": 10, "authors": 5, "publishers": 4, "genres": 7}, data.Stats)
	})
}

func TestLoginGate(t *testing.T) {
	r, _ := newTestRouter(t, config.AuthModeFlag)

	t.Run("未登录返回跳转地址", func(t *testing.T) {
		var data struct {
			Redirect string `json:"redirect"`
		}
		env := decode(t, do(r, http.MethodGet, "/api/v1/books?genre=Mystery"), &data)

		assert.Equal(t, 40100, env.Code)
		assert.Equal(t, "/login?redirect=%2Fapi%2Fv1%2Fbooks%3Fgenre%3DMystery", data.Redirect)
	})

	t.Run("Cookie值不是1视为未登录", func(t *testing.T) {
		env := decode(t, do(r, http.MethodGet, "/api/v1/authors",
			&http.Cookie{Name: "bookhub_auth", Value: "yes"}), nil)
		assert.Equal(t, 40100, env.Code)
	})

	t.Run("登录写入Cookie并清洗跳转地址", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/login?redirect=/books%3Fgenre%3DMystery")
		var data struct {
			Redirect string `json:"redirect"`
		}
		env := decode(t, w, &data)

		assert.Equal(t, 0, env.Code)
		assert.Equal(t, "/books?genre=Mystery", data.Redirect)
		assert.Contains(t, w.Header().Get("Set-Cookie"), "bookhub_auth=1")
		assert.Contains(t, w.Header().Get("Set-Cookie"), "HttpOnly")

		w = do(r, http.MethodPost, "/api/v1/login?redirect=//evil.example.com")
		decode(t, w, &data)
		assert.Equal(t, "/", data.Redirect)
	})

	t.Run("登出清除Cookie", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/logout", loggedIn)
		env := decode(t, w, nil)

		assert.Equal(t, 0, env.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
	})
}

func TestSignedLoginGate(t *testing.T) {
	r, _ := newTestRouter(t, config.AuthModeSigned)

	login := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(`{"name":"reader"}`))
	login.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, login)
	decode(t, w, nil)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	token := cookies[0]
	assert.NotEqual(t, "1", token.Value)

	env := decode(t, do(r, http.MethodGet, "/api/v1/publishers", token), nil)
	assert.Equal(t, 0, env.Code)

	env = decode(t, do(r, http.MethodGet, "/api/v1/publishers", loggedIn), nil)
	assert.Equal(t, 40100, env.Code, "signed模式下flag值无效")

	decode(t, do(r, http.MethodPost, "/api/v1/logout", token), nil)

	env = decode(t, do(r, http.MethodGet, "/api/v1/publishers", token), nil)
	assert.Equal(t, 40100, env.Code, "登出后Token被吊销")
}

func TestLogoutClearsCookieWhenRevocationFails(t *testing.T) {
	r, _ := newTestRouterWith(t, config.AuthModeSigned, failingRevocations{})

	login := httptest.NewRequest(http.MethodPost, "/api/v1/login", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, login)
	decode(t, w, nil)
	require.Len(t, w.Result().Cookies(), 1)
	token := w.Result().Cookies()[0]

	w = do(r, http.MethodPost, "/api/v1/logout", token)
	var data struct {
		Redirect string `json:"redirect"`
	}
	env := decode(t, w, &data)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "/login", data.Redirect)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1, "吊销失败时也必须清除Cookie")
	assert.Equal(t, "bookhub_auth", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestListBooks(t *testing.T) {
	r, _ := newTestRouter(t, config.AuthModeFlag)

	t.Run("类型分面与链接", func(t *testing.T) {
		var data listData
		env := decode(t, do(r, http.MethodGet, "/api/v1/books?genre=Mystery&q=none", loggedIn), &data)

		require.Equal(t, 0, env.Code)
		assert.Equal(t, 1, data.Total)
		assert.Equal(t, "And Then There Were None", data.List[0]["title"])
		assert.Equal(t, "Agatha Christie", data.List[0]["author"])
		assert.Equal(t, "Mystery", data.Query.Facet)

		require.NotEmpty(t, data.Facets)
		assert.Equal(t, "all", data.Facets[0].Value)
		assert.Equal(t, "/api/v1/books?page=1&q=none", data.Facets[0].Href)

		require.Len(t, data.SortLinks, 4)
		assert.Equal(t, "/api/v1/books?dir=asc&genre=Mystery&q=none&sort=title", data.SortLinks[0].Href)
	})

	t.Run("分页", func(t *testing.T) {
		var data listData
		decode(t, do(r, http.MethodGet, "/api/v1/books?page=2", loggedIn), &data)

		assert.Equal(t, 10, data.Total)
		assert.Equal(t, 2, data.TotalPages)
		assert.Equal(t, 2, data.Page)
		assert.Len(t, data.List, 4)
		assert.True(t, data.Pagination.Next.Disabled)
		assert.Equal(t, "/api/v1/books?page=1", data.Pagination.Prev.Href)
	})

	t.Run("未知排序字段", func(t *testing.T) {
		env := decode(t, do(r, http.MethodGet, "/api/v1/books?sort=price", loggedIn), nil)
		assert.Equal(t, 40900, env.Code)
	})

	t.Run("畸形页码按第一页", func(t *testing.T) {
		var data listData
		decode(t, do(r, http.MethodGet, "/api/v1/books?page=abc", loggedIn), &data)
		assert.Equal(t, 1, data.Page)
	})
}

func TestListPublishers(t *testing.T) {
	r, _ := newTestRouter(t, config.AuthModeFlag)

	var data listData
	decode(t, do(r, http.MethodGet, "/api/v1/publishers?sort=foundedYear&dir=desc", loggedIn), &data)

	years := make([]float64, len(data.List))
	for i, item := range data.List {
		years[i] = item["founded_year"].(float64)
	}
	assert.Equal(t, []float64{1991, 1978, 1952, 1930}, years)
	assert.Equal(t, "desc", data.Query.Dir)

	decode(t, do(r, http.MethodGet, "/api/v1/publishers?page=99", loggedIn), &data)
	assert.Equal(t, 1, data.Page)
	assert.Equal(t, 99, data.Query.Page)
	assert.Len(t, data.List, 4)
}

func TestDetailRoutes(t *testing.T) {
	r, _ := newTestRouter(t, config.AuthModeFlag)

	tests := []struct {
		name     string
		target   string
		wantCode int
	}{
		{"图书详情", "/api/v1/books/3", 0},
		{"图书不存在", "/api/v1/books/99", 40402},
		{"非数字ID按不存在处理", "/api/v1/books/abc", 40402},
		{"作者详情", "/api/v1/authors/5", 0},
		{"作者不存在", "/api/v1/authors/0", 40405},
		{"出版社详情", "/api/v1/publishers/2?page=2", 0},
		{"出版社不存在", "/api/v1/publishers/x", 40406},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := decode(t, do(r, http.MethodGet, tt.target, loggedIn), nil)
			assert.Equal(t, tt.wantCode, env.Code)
		})
	}

	var book struct {
		Title        string                   `json:"title"`
		MoreByAuthor []map[string]interface{} `json:"more_by_author"`
	}
	decode(t, do(r, http.MethodGet, "/api/v1/books/3", loggedIn), &book)
	assert.Equal(t, "1984", book.Title)
	require.Len(t, book.MoreByAuthor, 1)
	assert.Equal(t, "Animal Farm", book.MoreByAuthor[0]["title"])
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, config.AuthModeFlag)

	do(r, http.MethodGet, "/api/v1/books/1", loggedIn)
	do(r, http.MethodGet, "/api/v1/books", loggedIn)

	w := do(r, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",path="/api/v1/books/:id",status="200"} 1`)
	assert.Contains(t, body, `catalog_queries_total{entity="books"} 1`)
}
