package dto

// ── 问题类型模块 DTO ──

// CreateIssueRequest 创建问题类型请求
type CreateIssueRequest struct {
	IssueType string `json:"issue_type" binding:"required"`
}

// UpdateIssueRequest 更新问题类型请求
type UpdateIssueRequest struct {
	IssueType string `json:"issue_type" binding:"required"`
}
