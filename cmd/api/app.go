package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appauthor "github.com/xiebiao/bookhub/internal/application/author"
	appbook "github.com/xiebiao/bookhub/internal/application/book"
	apppublisher "github.com/xiebiao/bookhub/internal/application/publisher"
	appsession "github.com/xiebiao/bookhub/internal/application/session"
	"github.com/xiebiao/bookhub/internal/domain/author"
	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/domain/publisher"
	"github.com/xiebiao/bookhub/internal/domain/session"
	"github.com/xiebiao/bookhub/internal/infrastructure/config"
	"github.com/xiebiao/bookhub/internal/infrastructure/persistence/fixture"
	"github.com/xiebiao/bookhub/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookhub/internal/interface/http/middleware"
	"github.com/xiebiao/bookhub/pkg/jwt"
	"github.com/xiebiao/bookhub/pkg/metrics"
)

// App 组装完成的应用
// serve使用Engine；query直接调用列表用例
type App struct {
	Engine         *gin.Engine
	ListBooks      *appbook.ListBooksUseCase
	ListAuthors    *appauthor.ListAuthorsUseCase
	ListPublishers *apppublisher.ListPublishersUseCase
}

// ========================================
// Custom Providers
// ========================================
// 构造函数参数需要从Config中提取时，Wire无法自动推断，在这里手动编写

func provideFixtureStore(cfg *config.Config, logger *zap.Logger) (*fixture.Store, error) {
	store, err := fixture.Open(cfg.Catalog.FixturePath)
	if err != nil {
		return nil, err
	}

	books, authors, publishers := store.Counts()
	logger.Info("✓ 数据集加载成功",
		zap.String("path", cfg.Catalog.FixturePath),
		zap.Int("books", books),
		zap.Int("authors", authors),
		zap.Int("publishers", publishers),
	)
	return store, nil
}

func provideListBooksUseCase(
	cfg *config.Config,
	books book.Repository,
	authors author.Repository,
	publishers publisher.Repository,
	m *metrics.Metrics,
) (*appbook.ListBooksUseCase, error) {
	locale, err := cfg.Catalog.LocaleTag()
	if err != nil {
		return nil, err
	}
	return appbook.NewListBooksUseCase(books, authors, publishers, cfg.Catalog.PageSize.Books, locale, m)
}

func provideListAuthorsUseCase(
	cfg *config.Config,
	authors author.Repository,
	books book.Repository,
	m *metrics.Metrics,
) (*appauthor.ListAuthorsUseCase, error) {
	locale, err := cfg.Catalog.LocaleTag()
	if err != nil {
		return nil, err
	}
	return appauthor.NewListAuthorsUseCase(authors, books, cfg.Catalog.PageSize.Authors, locale, m)
}

func provideListPublishersUseCase(
	cfg *config.Config,
	publishers publisher.Repository,
	books book.Repository,
	m *metrics.Metrics,
) (*apppublisher.ListPublishersUseCase, error) {
	locale, err := cfg.Catalog.LocaleTag()
	if err != nil {
		return nil, err
	}
	return apppublisher.NewListPublishersUseCase(publishers, books, cfg.Catalog.PageSize.Publishers, locale, m)
}

func provideGetAuthorUseCase(cfg *config.Config, authors author.Repository, books book.Repository) *appauthor.GetAuthorUseCase {
	return appauthor.NewGetAuthorUseCase(authors, books, cfg.Catalog.PageSize.Detail)
}

func provideGetPublisherUseCase(cfg *config.Config, publishers publisher.Repository, books book.Repository) *apppublisher.GetPublisherUseCase {
	return apppublisher.NewGetPublisherUseCase(publishers, books, cfg.Catalog.PageSize.Detail)
}

func provideAuthConfig(cfg *config.Config) config.AuthConfig {
	return cfg.Auth
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
}

// provideRevocationList 只有signed模式且启用Redis时才连接Redis
func provideRevocationList(cfg *config.Config, logger *zap.Logger) (session.RevocationList, func(), error) {
	if cfg.Auth.Mode != config.AuthModeSigned || !cfg.Redis.Enabled {
		return session.NopRevocationList{}, func() {}, nil
	}

	client, cleanup, err := redis.NewClient(context.Background(), cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return redis.NewRevocationStore(client, logger), cleanup, nil
}

func provideAuthenticator(cfg *config.Config, verifier *appsession.Verifier) middleware.Authenticator {
	return middleware.CookieAuthenticator(cfg.Auth.CookieName, verifier)
}
