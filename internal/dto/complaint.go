package dto

// ── 投诉模块 DTO ──

// CreateComplaintRequest 创建投诉请求，status 为空时默认 pending
type CreateComplaintRequest struct {
	DepttID         int    `json:"deptt_id"         binding:"required,gt=0"`
	IssueID         int    `json:"issue_id"         binding:"required,gt=0"`
	ComplaintDetail string `json:"complaint_detail" binding:"required"`
	Status          string `json:"status"`
}

// UpdateComplaintRequest 更新投诉请求（整体替换可编辑字段）
type UpdateComplaintRequest struct {
	DepttID         int    `json:"deptt_id"         binding:"required,gt=0"`
	IssueID         int    `json:"issue_id"         binding:"required,gt=0"`
	ComplaintDetail string `json:"complaint_detail" binding:"required"`
	Status          string `json:"status"           binding:"required"`
}

// ComplaintListRequest 投诉列表过滤参数
type ComplaintListRequest struct {
	Status  string `form:"status"`
	DepttID int    `form:"deptt_id" binding:"omitempty,gt=0"`
	IssueID int    `form:"issue_id" binding:"omitempty,gt=0"`
}
