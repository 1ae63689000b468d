package dto

// ── 部门模块 DTO ──

// CreateDepartmentRequest 创建部门请求（名称在 Service 层去空白并转大写）
type CreateDepartmentRequest struct {
	DepttName string `json:"deptt_name" binding:"required"`
}

// UpdateDepartmentRequest 更新部门请求
type UpdateDepartmentRequest struct {
	DepttName string `json:"deptt_name" binding:"required"`
}
