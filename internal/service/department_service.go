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

// ── 部门模块业务错误 ──

var (
	ErrDepartmentNotFound    = errors.New("department not found")
	ErrInvalidDepartmentName = errors.New("department name must be 1-100 characters")
	ErrDepartmentInUse       = errors.New("department is referenced by complaints")
)

// DepartmentService 部门业务接口
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*model.Department, error)
	GetByID(ctx context.Context, id int) (*model.Department, error)
	List(ctx context.Context) ([]model.Department, error)
	Update(ctx context.Context, id int, req *dto.UpdateDepartmentRequest) error
	Delete(ctx context.Context, id int) error
}

type departmentService struct {
	repo   *repository.Repository
	cache  *cacheSupport
	logger *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, cache *cacheSupport, logger *zap.Logger) DepartmentService {
	if cache == nil {
		cache = newCacheSupport(nil, 0, logger)
	}
	return &departmentService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*model.Department, error) {
	name, err := NormalizeDepartmentName(req.DepttName)
	if err != nil {
		return nil, err
	}

	dept := &model.Department{DepttName: name}
	if err := s.repo.Department.Create(ctx, dept); err != nil {
		s.logger.Error("创建部门失败", zap.Error(err))
		return nil, err
	}

	s.cache.invalidate(ctx, tagDepartment)
	return dept, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *departmentService) GetByID(ctx context.Context, id int) (*model.Department, error) {
	key := "departments:" + strconv.Itoa(id)
	return readThrough(ctx, s.cache, key, []string{tagDepartment}, func() (*model.Department, error) {
		dept, err := s.repo.Department.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			s.logger.Error("查询部门失败", zap.Int("id", id), zap.Error(err))
			return nil, err
		}
		return dept, nil
	})
}

// ────────────────────── List ──────────────────────

func (s *departmentService) List(ctx context.Context) ([]model.Department, error) {
	return readThrough(ctx, s.cache, "departments:list", []string{tagDepartment}, func() ([]model.Department, error) {
		depts, err := s.repo.Department.List(ctx)
		if err != nil {
			s.logger.Error("列出部门失败", zap.Error(err))
			return nil, err
		}
		return depts, nil
	})
}

// ────────────────────── Update ──────────────────────

func (s *departmentService) Update(ctx context.Context, id int, req *dto.UpdateDepartmentRequest) error {
	name, err := NormalizeDepartmentName(req.DepttName)
	if err != nil {
		return err
	}

	n, err := s.repo.Department.UpdateName(ctx, id, name)
	if err != nil {
		s.logger.Error("更新部门失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	if n == 0 {
		return ErrDepartmentNotFound
	}

	s.cache.invalidate(ctx, tagDepartment)
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *departmentService) Delete(ctx context.Context, id int) error {
	count, err := s.repo.Department.CountComplaints(ctx, id)
	if err != nil {
		s.logger.Error("查询部门关联投诉数失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrDepartmentInUse
	}

	n, err := s.repo.Department.Delete(ctx, id)
	if err != nil {
		// 计数之后有新投诉引用了该部门，由外键兜底
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return ErrDepartmentInUse
		}
		s.logger.Error("删除部门失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	if n == 0 {
		return ErrDepartmentNotFound
	}

	s.cache.invalidate(ctx, tagDepartment)
	return nil
}
