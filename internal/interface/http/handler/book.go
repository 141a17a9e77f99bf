package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookhub/internal/application/book"
	"github.com/xiebiao/bookhub/internal/domain/book"
	"github.com/xiebiao/bookhub/internal/interface/http/dto"
	"github.com/xiebiao/bookhub/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooks *appbook.ListBooksUseCase
	getBook   *appbook.GetBookUseCase
	home      *appbook.HomeUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooks *appbook.ListBooksUseCase,
	getBook *appbook.GetBookUseCase,
	home *appbook.HomeUseCase,
) *BookHandler {
	return &BookHandler{
		listBooks: listBooks,
		getBook:   getBook,
		home:      home,
	}
}

// Home 首页
// @Summary      首页
// @Description  推荐图书(数据集前6本)与目录统计，无需登录
// @Tags         首页
// @Produce      json
// @Success      200 {object} response.Response{data=dto.HomeResponse}
// @Router       /api/v1/home [get]
func (h *BookHandler) Home(c *gin.Context) {
	result, err := h.home.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewHomeResponse(result))
}

// List 图书列表
// @Summary      图书列表
// @Description  文本搜索(书名、作者) + 类型分面 + 排序 + 分页
// @Tags         图书
// @Produce      json
// @Param        request query dto.ListBooksRequest false "查询参数"
// @Success      200 {object} response.Response{data=dto.ListResponse{list=[]dto.BookListItem}}
// @Failure      200 {object} response.Response "40100 未登录 / 40900 不支持的排序字段"
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	// 1. 参数绑定(原始字符串)
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	// 2. 调用应用层用例
	result, err := h.listBooks.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Query: req.Q,
		Genre: req.Genre,
		Sort:  req.Sort,
		Dir:   req.Dir,
		Page:  req.Page,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建响应(链接基于当前请求的查询串)
	path, current := c.Request.URL.Path, c.Request.URL.Query()
	resp := dto.NewListResponse(path, current, result.State, result.Result,
		dto.NewBookListItems(result.Result.Items), result.SortKeys)
	response.Success(c, resp.WithFacets(path, current, appbook.GenreParam, result.Genres))
}

// Get 图书详情
// @Summary      图书详情
// @Description  图书、作者、出版社以及同一作者的其他图书
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookDetailResponse}
// @Failure      200 {object} response.Response "40402 图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.Error(c, book.ErrBookNotFound)
		return
	}

	result, err := h.getBook.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookDetailResponse(result))
}
