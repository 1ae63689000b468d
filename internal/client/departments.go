package client

import (
	"context"
	"net/http"

	"complaint-desk/internal/dto"
	"complaint-desk/internal/model"
)

// ListDepartments 获取全部部门
func (c *Client) ListDepartments(ctx context.Context) ([]model.Department, error) {
	return query[[]model.Department](ctx, c, "/departments", TagDepartment)
}

// GetDepartment 获取单个部门
func (c *Client) GetDepartment(ctx context.Context, id int) (*model.Department, error) {
	return query[*model.Department](ctx, c, itemPath("departments", id), TagDepartment, ItemTag(TagDepartment, id))
}

// 投诉行展示部门名称，部门变更同时失效投诉查询
var departmentMutationTags = []string{TagDepartment, TagComplaint}

// CreateDepartment 创建部门，返回服务端提示
func (c *Client) CreateDepartment(ctx context.Context, name string) (string, error) {
	return c.mutate(ctx, http.MethodPost, "/departments/new", dto.CreateDepartmentRequest{DepttName: name}, departmentMutationTags...)
}

// UpdateDepartment 更新部门名称
func (c *Client) UpdateDepartment(ctx context.Context, id int, name string) (string, error) {
	return c.mutate(ctx, http.MethodPut, itemPath("departments", id), dto.UpdateDepartmentRequest{DepttName: name}, departmentMutationTags...)
}

// DeleteDepartment 删除部门
func (c *Client) DeleteDepartment(ctx context.Context, id int) (string, error) {
	return c.mutate(ctx, http.MethodDelete, itemPath("departments", id), nil, departmentMutationTags...)
}
