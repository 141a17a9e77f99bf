package handler

import (
	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/bookhub/internal/application/author"
	"github.com/xiebiao/bookhub/internal/domain/author"
	"github.com/xiebiao/bookhub/internal/interface/http/dto"
	"github.com/xiebiao/bookhub/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	listAuthors *appauthor.ListAuthorsUseCase
	getAuthor   *appauthor.GetAuthorUseCase
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(listAuthors *appauthor.ListAuthorsUseCase, getAuthor *appauthor.GetAuthorUseCase) *AuthorHandler {
	return &AuthorHandler{listAuthors: listAuthors, getAuthor: getAuthor}
}

// List 作者列表
// @Summary      作者列表
// @Description  文本搜索(姓名、国籍) + 国籍分面 + 排序(默认按姓名) + 分页
// @Tags         作者
// @Produce      json
// @Param        request query dto.ListAuthorsRequest false "查询参数"
// @Success      200 {object} response.Response{data=dto.ListResponse{list=[]dto.AuthorListItem}}
// @Router       /api/v1/authors [get]
func (h *AuthorHandler) List(c *gin.Context) {
	var req dto.ListAuthorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.listAuthors.Execute(c.Request.Context(), appauthor.ListAuthorsRequest{
		Query:       req.Q,
		Nationality: req.Nationality,
		Sort:        req.Sort,
		Dir:         req.Dir,
		Page:        req.Page,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	path, current := c.Request.URL.Path, c.Request.URL.Query()
	resp := dto.NewListResponse(path, current, result.State, result.Result,
		dto.NewAuthorListItems(result.Result.Items), result.SortKeys)
	response.Success(c, resp.WithFacets(path, current, appauthor.NationalityParam, result.Nationalities))
}

// Get 作者详情
// @Summary      作者详情
// @Tags         作者
// @Produce      json
// @Param        id   path  int    true  "作者ID"
// @Param        page query string false "图书列表页码"
// @Success      200 {object} response.Response{data=dto.AuthorDetailResponse}
// @Failure      200 {object} response.Response "40405 作者不存在"
// @Router       /api/v1/authors/{id} [get]
func (h *AuthorHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.Error(c, author.ErrAuthorNotFound)
		return
	}

	result, err := h.getAuthor.Execute(c.Request.Context(), appauthor.GetAuthorRequest{
		ID:   id,
		Page: c.Query("page"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	books := dto.NewDetailBooks(c.Request.URL.Path, c.Request.URL.Query(), result.Books)
	response.Success(c, dto.NewAuthorDetailResponse(result, books))
}
