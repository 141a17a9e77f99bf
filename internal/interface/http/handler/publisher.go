package handler

import (
	"github.com/gin-gonic/gin"

	apppublisher "github.com/xiebiao/bookhub/internal/application/publisher"
	"github.com/xiebiao/bookhub/internal/domain/publisher"
	"github.com/xiebiao/bookhub/internal/interface/http/dto"
	"github.com/xiebiao/bookhub/pkg/response"
)

// PublisherHandler 出版社HTTP处理器
type PublisherHandler struct {
	listPublishers *apppublisher.ListPublishersUseCase
	getPublisher   *apppublisher.GetPublisherUseCase
}

// NewPublisherHandler 创建出版社处理器
func NewPublisherHandler(
	listPublishers *apppublisher.ListPublishersUseCase,
	getPublisher *apppublisher.GetPublisherUseCase,
) *PublisherHandler {
	return &PublisherHandler{listPublishers: listPublishers, getPublisher: getPublisher}
}

// List 出版社列表
// @Summary      出版社列表
// @Description  文本搜索(名称、国家) + 国家分面 + 排序(默认按名称) + 分页
// @Tags         出版社
// @Produce      json
// @Param        request query dto.ListPublishersRequest false "查询参数"
// @Success      200 {object} response.Response{data=dto.ListResponse{list=[]dto.PublisherListItem}}
// @Router       /api/v1/publishers [get]
func (h *PublisherHandler) List(c *gin.Context) {
	var req dto.ListPublishersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.listPublishers.Execute(c.Request.Context(), apppublisher.ListPublishersRequest{
		Query:   req.Q,
		Country: req.Country,
		Sort:    req.Sort,
		Dir:     req.Dir,
		Page:    req.Page,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	path, current := c.Request.URL.Path, c.Request.URL.Query()
	resp := dto.NewListResponse(path, current, result.State, result.Result,
		dto.NewPublisherListItems(result.Result.Items), result.SortKeys)
	response.Success(c, resp.WithFacets(path, current, apppublisher.CountryParam, result.Countries))
}

// Get 出版社详情
// @Summary      出版社详情
// @Tags         出版社
// @Produce      json
// @Param        id   path  int    true  "出版社ID"
// @Param        page query string false "图书列表页码"
// @Success      200 {object} response.Response{data=dto.PublisherDetailResponse}
// @Failure      200 {object} response.Response "40406 出版社不存在"
// @Router       /api/v1/publishers/{id} [get]
func (h *PublisherHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.Error(c, publisher.ErrPublisherNotFound)
		return
	}

	result, err := h.getPublisher.Execute(c.Request.Context(), apppublisher.GetPublisherRequest{
		ID:   id,
		Page: c.Query("page"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	books := dto.NewDetailBooks(c.Request.URL.Path, c.Request.URL.Query(), result.Books)
	response.Success(c, dto.NewPublisherDetailResponse(result, books))
}
