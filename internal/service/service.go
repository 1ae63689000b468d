package service

import (
	"go.uber.org/zap"

	"complaint-desk/config"
	"complaint-desk/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Department DepartmentService
	Issue      IssueService
	Complaint  ComplaintService
	Export     ExportService
}

// NewService 创建 Service 聚合
// cache 为 nil 或 cfg.Cache.TTL 为 0 时不启用读缓存
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache Cache,
	logger *zap.Logger,
) *Service {
	cs := newCacheSupport(cache, cfg.Cache.TTL, logger)
	return &Service{
		Department: NewDepartmentService(repo, cs, logger),
		Issue:      NewIssueService(repo, cs, logger),
		Complaint:  NewComplaintService(repo, cs, logger),
		Export:     NewExportService(repo, logger),
	}
}
