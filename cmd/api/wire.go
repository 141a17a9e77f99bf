//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookhub/internal/application/book"
	appsession "github.com/xiebiao/bookhub/internal/application/session"
	"github.com/xiebiao/bookhub/internal/infrastructure/config"
	"github.com/xiebiao/bookhub/internal/infrastructure/persistence/fixture"
	"github.com/xiebiao/bookhub/internal/interface/http/handler"
	"github.com/xiebiao/bookhub/internal/interface/http/router"
	"github.com/xiebiao/bookhub/pkg/metrics"
)

// repositorySet 仓储层：内置/外部YAML数据集
var repositorySet = wire.NewSet(
	provideFixtureStore,
	fixture.NewBookRepository,
	fixture.NewAuthorRepository,
	fixture.NewPublisherRepository,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	provideListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewHomeUseCase,
	provideListAuthorsUseCase,
	provideGetAuthorUseCase,
	provideListPublishersUseCase,
	provideGetPublisherUseCase,
	appsession.NewLoginUseCase,
	appsession.NewLogoutUseCase,
)

// sessionSet 登录门：JWT、吊销列表、校验器
var sessionSet = wire.NewSet(
	provideAuthConfig,
	provideJWTManager,
	provideRevocationList,
	appsession.NewVerifier,
	provideAuthenticator,
)

// handlerSet HTTP处理器与路由
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewAuthorHandler,
	handler.NewPublisherHandler,
	handler.NewSessionHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 初始化整个应用
// 返回的cleanup关闭Redis等外部连接
func InitializeApp(cfg *config.Config, logger *zap.Logger) (*App, func(), error) {
	wire.Build(
		metrics.New,
		repositorySet,
		applicationSet,
		sessionSet,
		handlerSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
