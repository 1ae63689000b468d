package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"complaint-desk/internal/dto"
	"complaint-desk/internal/model"
	"complaint-desk/internal/repository"
)

// ── 投诉模块业务错误 ──

var (
	ErrComplaintNotFound          = errors.New("complaint not found")
	ErrInvalidComplaintDetail     = errors.New("complaint detail must be 1-1000 characters")
	ErrInvalidComplaintStatus     = errors.New("status must be one of: pending, in progress, resolved, closed")
	ErrComplaintDepartmentMissing = errors.New("referenced department does not exist")
	ErrComplaintIssueMissing      = errors.New("referenced issue type does not exist")
)

// complaintTags 投诉读结果依赖部门名称与问题类型，三个标签任一失效都需重新联表
var complaintTags = []string{tagComplaint, tagDepartment, tagIssue}

// ComplaintService 投诉业务接口
type ComplaintService interface {
	Create(ctx context.Context, req *dto.CreateComplaintRequest) (*model.Complaint, error)
	GetByID(ctx context.Context, id int) (*model.ComplaintView, error)
	List(ctx context.Context, req *dto.ComplaintListRequest) ([]model.ComplaintView, error)
	Update(ctx context.Context, id int, req *dto.UpdateComplaintRequest) error
	Delete(ctx context.Context, id int) error
}

type complaintService struct {
	repo   *repository.Repository
	cache  *cacheSupport
	logger *zap.Logger
}

// NewComplaintService 创建 ComplaintService 实例
func NewComplaintService(repo *repository.Repository, cache *cacheSupport, logger *zap.Logger) ComplaintService {
	if cache == nil {
		cache = newCacheSupport(nil, 0, logger)
	}
	return &complaintService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *complaintService) Create(ctx context.Context, req *dto.CreateComplaintRequest) (*model.Complaint, error) {
	complaint, err := s.buildComplaint(ctx, req.DepttID, req.IssueID, req.ComplaintDetail, req.Status, model.StatusPending)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Complaint.Create(ctx, complaint); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, s.missingReference(ctx, complaint, err)
		}
		s.logger.Error("创建投诉失败", zap.Error(err))
		return nil, err
	}

	s.cache.invalidate(ctx, tagComplaint)
	return complaint, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *complaintService) GetByID(ctx context.Context, id int) (*model.ComplaintView, error) {
	key := "complaints:" + strconv.Itoa(id)
	return readThrough(ctx, s.cache, key, complaintTags, func() (*model.ComplaintView, error) {
		view, err := s.repo.Complaint.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrComplaintNotFound
			}
			s.logger.Error("查询投诉失败", zap.Int("id", id), zap.Error(err))
			return nil, err
		}
		return view, nil
	})
}

// ────────────────────── List ──────────────────────

func (s *complaintService) List(ctx context.Context, req *dto.ComplaintListRequest) ([]model.ComplaintView, error) {
	filter := repository.ComplaintFilter{DepttID: req.DepttID, IssueID: req.IssueID}
	if req.Status != "" {
		st, ok := model.NormalizeStatus(req.Status)
		if !ok {
			return nil, ErrInvalidComplaintStatus
		}
		filter.Status = st
	}

	key := fmt.Sprintf("complaints:list:status=%s:deptt=%d:issue=%d", filter.Status, filter.DepttID, filter.IssueID)
	return readThrough(ctx, s.cache, key, complaintTags, func() ([]model.ComplaintView, error) {
		views, err := s.repo.Complaint.List(ctx, filter)
		if err != nil {
			s.logger.Error("列出投诉失败", zap.Error(err))
			return nil, err
		}
		return views, nil
	})
}

// ────────────────────── Update ──────────────────────

func (s *complaintService) Update(ctx context.Context, id int, req *dto.UpdateComplaintRequest) error {
	complaint, err := s.buildComplaint(ctx, req.DepttID, req.IssueID, req.ComplaintDetail, req.Status, "")
	if err != nil {
		return err
	}
	complaint.ComplaintID = id

	n, err := s.repo.Complaint.Update(ctx, complaint)
	if err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return s.missingReference(ctx, complaint, err)
		}
		s.logger.Error("更新投诉失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	if n == 0 {
		return ErrComplaintNotFound
	}

	s.cache.invalidate(ctx, tagComplaint)
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *complaintService) Delete(ctx context.Context, id int) error {
	n, err := s.repo.Complaint.Delete(ctx, id)
	if err != nil {
		s.logger.Error("删除投诉失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	if n == 0 {
		return ErrComplaintNotFound
	}

	s.cache.invalidate(ctx, tagComplaint)
	return nil
}

// ── 内部辅助方法 ──

// buildComplaint 校验字段并确认部门、问题类型存在
func (s *complaintService) buildComplaint(ctx context.Context, depttID, issueID int, detail, status, defaultStatus string) (*model.Complaint, error) {
	d, err := NormalizeComplaintDetail(detail)
	if err != nil {
		return nil, err
	}
	st, err := normalizeComplaintStatus(status, defaultStatus)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Department.GetByID(ctx, depttID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintDepartmentMissing
		}
		s.logger.Error("查询部门失败", zap.Int("deptt_id", depttID), zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Issue.GetByID(ctx, issueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintIssueMissing
		}
		s.logger.Error("查询问题类型失败", zap.Int("issue_id", issueID), zap.Error(err))
		return nil, err
	}

	return &model.Complaint{
		DepttID:         depttID,
		IssueID:         issueID,
		ComplaintDetail: d,
		Status:          st,
	}, nil
}

// missingReference 写入时外键冲突（校验之后部门或问题类型被删除），重新确认是哪一个引用缺失
func (s *complaintService) missingReference(ctx context.Context, c *model.Complaint, cause error) error {
	if _, err := s.repo.Department.GetByID(ctx, c.DepttID); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrComplaintDepartmentMissing
	}
	if _, err := s.repo.Issue.GetByID(ctx, c.IssueID); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrComplaintIssueMissing
	}
	s.logger.Error("写入投诉时外键冲突", zap.Error(cause))
	return cause
}
