package dto

// LoginRequest HTTP登录请求
// 登录门不校验凭证，name只作为签名Token的subject
type LoginRequest struct {
	Name     string `json:"name" form:"name" example:"reader"`
	Redirect string `json:"redirect" form:"redirect" example:"/books?genre=Mystery"`
}

// LoginResponse HTTP登录响应
type LoginResponse struct {
	Redirect string `json:"redirect" example:"/books?genre=Mystery"`
}
