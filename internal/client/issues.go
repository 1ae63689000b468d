package client

import (
	"context"
	"net/http"

	"complaint-desk/internal/dto"
	"complaint-desk/internal/model"
)

// ListIssues 获取全部问题类型
func (c *Client) ListIssues(ctx context.Context) ([]model.Issue, error) {
	return query[[]model.Issue](ctx, c, "/issues", TagIssue)
}

// GetIssue 获取单个问题类型
func (c *Client) GetIssue(ctx context.Context, id int) (*model.Issue, error) {
	return query[*model.Issue](ctx, c, itemPath("issues", id), TagIssue, ItemTag(TagIssue, id))
}

var issueMutationTags = []string{TagIssue, TagComplaint}

func (c *Client) CreateIssue(ctx context.Context, issueType string) (string, error) {
	return c.mutate(ctx, http.MethodPost, "/issues/new", dto.CreateIssueRequest{IssueType: issueType}, issueMutationTags...)
}

func (c *Client) UpdateIssue(ctx context.Context, id int, issueType string) (string, error) {
	return c.mutate(ctx, http.MethodPut, itemPath("issues", id), dto.UpdateIssueRequest{IssueType: issueType}, issueMutationTags...)
}

func (c *Client) DeleteIssue(ctx context.Context, id int) (string, error) {
	return c.mutate(ctx, http.MethodDelete, itemPath("issues", id), nil, issueMutationTags...)
}
