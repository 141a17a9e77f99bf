// Package integration 针对运行中的服务做端到端测试
//
// 使用方式：
//
//	bookhub serve &
//	go test ./test/integration/...
//
// 通过BOOKHUB_BASE_URL指定服务地址；服务不可达时跳过全部测试
package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	// DefaultBaseURL 服务默认地址(不含/api/v1)
	DefaultBaseURL = "http://localhost:8080"
	// Timeout HTTP请求超时时间
	Timeout = 5 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Link 分页、排序、分面链接
type Link struct {
	Value    string `json:"value"`
	Key      string `json:"key"`
	Page     int    `json:"page"`
	Href     string `json:"href"`
	Active   bool   `json:"active"`
	Current  bool   `json:"current"`
	Disabled bool   `json:"disabled"`
}

// ListData 列表响应数据
type ListData struct {
	List       []map[string]interface{} `json:"list"`
	Total      int                      `json:"total"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"page_size"`
	TotalPages int                      `json:"total_pages"`
	Pagination struct {
		Prev  Link   `json:"prev"`
		Next  Link   `json:"next"`
		Pages []Link `json:"pages"`
	} `json:"pagination"`
	SortLinks []Link `json:"sort_links"`
	Facets    []Link `json:"facets"`
}

// Client 带Cookie的测试客户端，模拟一个浏览器会话
type Client struct {
	t       *testing.T
	baseURL string
	http    *http.Client
}

// NewClient 创建客户端，服务不可达时跳过测试
func NewClient(t *testing.T) *Client {
	t.Helper()

	baseURL := os.Getenv("BOOKHUB_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	c := &Client{
		t:       t,
		baseURL: baseURL,
		http:    &http.Client{Timeout: Timeout, Jar: jar},
	}

	resp, err := c.http.Get(baseURL + "/ping")
	if err != nil {
		t.Skipf("服务不可达(%s)，跳过集成测试: %v", baseURL, err)
	}
	_ = resp.Body.Close()
	return c
}

// Get 发送GET请求，path可以是接口返回的href
func (c *Client) Get(path string) *Response {
	c.t.Helper()
	return c.do(http.MethodGet, path, nil)
}

// Post 发送POST请求(JSON请求体可为空)
func (c *Client) Post(path, body string) *Response {
	c.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return c.do(http.MethodPost, path, r)
}

// List 请求列表接口并解析数据
func (c *Client) List(path string) *ListData {
	c.t.Helper()
	resp := c.Get(path)
	require.Equal(c.t, 0, resp.Code, "列表请求失败: %s", resp.Message)

	var data ListData
	require.NoError(c.t, json.Unmarshal(resp.Data, &data))
	return &data
}

// Login 登录
func (c *Client) Login() {
	c.t.Helper()
	resp := c.Post("/api/v1/login", `{"name":"integration"}`)
	require.Equal(c.t, 0, resp.Code, "登录失败: %s", resp.Message)
}

func (c *Client) do(method, path string, body io.Reader) *Response {
	c.t.Helper()

	req, err := http.NewRequest(method, c.baseURL+path, body)
	require.NoError(c.t, err, "创建HTTP请求失败")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err, "读取响应体失败")

	var result Response
	require.NoError(c.t, json.Unmarshal(raw, &result), "解析JSON响应失败: %s", string(raw))
	return &result
}
