package service

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"complaint-desk/internal/dto"
	"complaint-desk/internal/model"
	"complaint-desk/internal/repository"
)

// ── 问题类型模块业务错误 ──

var (
	ErrIssueNotFound    = errors.New("issue not found")
	ErrInvalidIssueType = errors.New("issue type must be 2-50 characters")
	ErrIssueInUse       = errors.New("issue type is referenced by complaints")
)

// IssueService 问题类型业务接口
type IssueService interface {
	Create(ctx context.Context, req *dto.CreateIssueRequest) (*model.Issue, error)
	GetByID(ctx context.Context, id int) (*model.Issue, error)
	List(ctx context.Context) ([]model.Issue, error)
	Update(ctx context.Context, id int, req *dto.UpdateIssueRequest) error
	Delete(ctx context.Context, id int) error
}

type issueService struct {
	repo   *repository.Repository
	cache  *cacheSupport
	logger *zap.Logger
}

// NewIssueService 创建 IssueService 实例
func NewIssueService(repo *repository.Repository, cache *cacheSupport, logger *zap.Logger) IssueService {
	if cache == nil {
		cache = newCacheSupport(nil, 0, logger)
	}
	return &issueService{repo: repo, cache: cache, logger: logger}
}

func (s *issueService) Create(ctx context.Context, req *dto.CreateIssueRequest) (*model.Issue, error) {
	issueType, err := NormalizeIssueType(req.IssueType)
	if err != nil {
		return nil, err
	}

	issue := &model.Issue{IssueType: issueType}
	if err := s.repo.Issue.Create(ctx, issue); err != nil {
		s.logger.Error("创建问题类型失败", zap.Error(err))
		return nil, err
	}

	s.cache.invalidate(ctx, tagIssue)
	return issue, nil
}

func (s *issueService) GetByID(ctx context.Context, id int) (*model.Issue, error) {
	key := "issues:" + strconv.Itoa(id)
	return readThrough(ctx, s.cache, key, []string{tagIssue}, func() (*model.Issue, error) {
		issue, err := s.repo.Issue.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrIssueNotFound
			}
			s.logger.Error("查询问题类型失败", zap.Int("id", id), zap.Error(err))
			return nil, err
		}
		return issue, nil
	})
}

func (s *issueService) List(ctx context.Context) ([]model.Issue, error) {
	return readThrough(ctx, s.cache, "issues:list", []string{tagIssue}, func() ([]model.Issue, error) {
		issues, err := s.repo.Issue.List(ctx)
		if err != nil {
			s.logger.Error("列出问题类型失败", zap.Error(err))
			return nil, err
		}
		return issues, nil
	})
}

func (s *issueService) Update(ctx context.Context, id int, req *dto.UpdateIssueRequest) error {
	issueType, err := NormalizeIssueType(req.IssueType)
	if err != nil {
		return err
	}

	n, err := s.repo.Issue.UpdateType(ctx, id, issueType)
	if err != nil {
		s.logger.Error("更新问题类型失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	if n == 0 {
		return ErrIssueNotFound
	}

	s.cache.invalidate(ctx, tagIssue)
	return nil
}

func (s *issueService) Delete(ctx context.Context, id int) error {
	count, err := s.repo.Issue.CountComplaints(ctx, id)
	if err != nil {
		s.logger.Error("查询问题类型关联投诉数失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrIssueInUse
	}

	n, err := s.repo.Issue.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return ErrIssueInUse
		}
		s.logger.Error("删除问题类型失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	if n == 0 {
		return ErrIssueNotFound
	}

	s.cache.invalidate(ctx, tagIssue)
	return nil
}
