package handler

import "complaint-desk/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Department *DepartmentHandler
	Issue      *IssueHandler
	Complaint  *ComplaintHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Department: NewDepartmentHandler(svc.Department),
		Issue:      NewIssueHandler(svc.Issue),
		Complaint:  NewComplaintHandler(svc.Complaint),
		Export:     NewExportHandler(svc.Export),
	}
}
