package repository

import (
	"context"

	"gorm.io/gorm"

	"complaint-desk/internal/model"
)

// DepartmentRepository 部门数据访问接口
// UpdateName / Delete 返回受影响行数，调用方据此判断记录是否存在
type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	GetByID(ctx context.Context, id int) (*model.Department, error)
	List(ctx context.Context) ([]model.Department, error)
	UpdateName(ctx context.Context, id int, name string) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
	CountComplaints(ctx context.Context, id int) (int64, error)
}

// departmentRepo DepartmentRepository 的 GORM 实现
type departmentRepo struct {
	db *gorm.DB
}

// NewDepartmentRepo 创建 DepartmentRepository 实例
func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) Create(ctx context.Context, dept *model.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepo) GetByID(ctx context.Context, id int) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("deptt_id = ?", id).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) List(ctx context.Context) ([]model.Department, error) {
	depts := make([]model.Department, 0)
	err := r.db.WithContext(ctx).
		Order("deptt_id ASC").
		Find(&depts).Error
	return depts, err
}

func (r *departmentRepo) UpdateName(ctx context.Context, id int, name string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Department{}).
		Where("deptt_id = ?", id).
		Update("deptt_name", name)
	return res.RowsAffected, res.Error
}

func (r *departmentRepo) Delete(ctx context.Context, id int) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("deptt_id = ?", id).
		Delete(&model.Department{})
	return res.RowsAffected, translateError(res.Error)
}

func (r *departmentRepo) CountComplaints(ctx context.Context, id int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Where("deptt_id = ?", id).
		Count(&count).Error
	return count, err
}
