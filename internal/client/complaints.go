package client

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"complaint-desk/internal/dto"
	"complaint-desk/internal/model"
)

// ListComplaints 获取投诉列表，filter 为 nil 时不过滤
func (c *Client) ListComplaints(ctx context.Context, filter *dto.ComplaintListRequest) ([]model.ComplaintView, error) {
	return query[[]model.ComplaintView](ctx, c, "/complaints"+complaintQuery(filter), TagComplaint)
}

// GetComplaint 获取单条投诉
func (c *Client) GetComplaint(ctx context.Context, id int) (*model.ComplaintView, error) {
	return query[*model.ComplaintView](ctx, c, itemPath("complaints", id), TagComplaint, ItemTag(TagComplaint, id))
}

// CreateComplaint 创建投诉
func (c *Client) CreateComplaint(ctx context.Context, req dto.CreateComplaintRequest) (string, error) {
	return c.mutate(ctx, http.MethodPost, "/complaints/new", req, TagComplaint)
}

// UpdateComplaint 更新投诉（全部字段）
func (c *Client) UpdateComplaint(ctx context.Context, id int, req dto.UpdateComplaintRequest) (string, error) {
	return c.mutate(ctx, http.MethodPut, itemPath("complaints", id), req, TagComplaint)
}

// DeleteComplaint 删除投诉
func (c *Client) DeleteComplaint(ctx context.Context, id int) (string, error) {
	return c.mutate(ctx, http.MethodDelete, itemPath("complaints", id), nil, TagComplaint)
}

// ExportComplaints 下载投诉 Excel，返回文件内容与服务端建议的文件名
func (c *Client) ExportComplaints(ctx context.Context, filter *dto.ComplaintListRequest) ([]byte, string, error) {
	data, header, err := c.send(ctx, http.MethodGet, "/complaints/export"+complaintQuery(filter), nil)
	if err != nil {
		return nil, "", err
	}

	filename := "complaints.xlsx"
	if _, params, err := mime.ParseMediaType(header.Get("Content-Disposition")); err == nil {
		if name := params["filename"]; name != "" {
			filename = name
		}
	}
	return data, filename, nil
}

func complaintQuery(filter *dto.ComplaintListRequest) string {
	if filter == nil {
		return ""
	}
	v := url.Values{}
	if filter.Status != "" {
		v.Set("status", filter.Status)
	}
	if filter.DepttID > 0 {
		v.Set("deptt_id", strconv.Itoa(filter.DepttID))
	}
	if filter.IssueID > 0 {
		v.Set("issue_id", strconv.Itoa(filter.IssueID))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
