package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Department DepartmentRepository
	Issue      IssueRepository
	Complaint  ComplaintRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Department: NewDepartmentRepo(db),
		Issue:      NewIssueRepo(db),
		Complaint:  NewComplaintRepo(db),
	}
}
