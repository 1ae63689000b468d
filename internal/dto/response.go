package dto

// MessageResponse 写操作的确认响应
type MessageResponse struct {
	Message string `json:"message"`
}
