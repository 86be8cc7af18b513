package model

// PageMeta 分页簿记, 每次成功拉取后整体替换
type PageMeta struct {
	Count    int  `json:"count"`
	HasNext  bool `json:"has_next"`
	HasPrev  bool `json:"has_prev"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
}

type LoginParam struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
