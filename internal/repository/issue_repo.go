package repository

import (
	"context"

	"gorm.io/gorm"

	"complaint-desk/internal/model"
)

// IssueRepository 问题类型数据访问接口
type IssueRepository interface {
	Create(ctx context.Context, issue *model.Issue) error
	GetByID(ctx context.Context, id int) (*model.Issue, error)
	List(ctx context.Context) ([]model.Issue, error)
	UpdateType(ctx context.Context, id int, issueType string) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
	CountComplaints(ctx context.Context, id int) (int64, error)
}

type issueRepo struct {
	db *gorm.DB
}

// NewIssueRepo 创建 IssueRepository 实例
func NewIssueRepo(db *gorm.DB) IssueRepository {
	return &issueRepo{db: db}
}

func (r *issueRepo) Create(ctx context.Context, issue *model.Issue) error {
	return r.db.WithContext(ctx).Create(issue).Error
}

func (r *issueRepo) GetByID(ctx context.Context, id int) (*model.Issue, error) {
	var issue model.Issue
	if err := r.db.WithContext(ctx).Where("issue_id = ?", id).First(&issue).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *issueRepo) List(ctx context.Context) ([]model.Issue, error) {
	issues := make([]model.Issue, 0)
	err := r.db.WithContext(ctx).Order("issue_id ASC").Find(&issues).Error
	return issues, err
}

func (r *issueRepo) UpdateType(ctx context.Context, id int, issueType string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Issue{}).
		Where("issue_id = ?", id).
		Update("issue_type", issueType)
	return res.RowsAffected, res.Error
}

func (r *issueRepo) Delete(ctx context.Context, id int) (int64, error) {
	res := r.db.WithContext(ctx).Where("issue_id = ?", id).Delete(&model.Issue{})
	return res.RowsAffected, translateError(res.Error)
}

func (r *issueRepo) CountComplaints(ctx context.Context, id int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Where("issue_id = ?", id).
		Count(&count).Error
	return count, err
}
