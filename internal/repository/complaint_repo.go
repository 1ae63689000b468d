package repository

import (
	"context"

	"gorm.io/gorm"

	"complaint-desk/internal/model"
)

// ComplaintFilter 投诉列表过滤条件，零值表示不过滤
type ComplaintFilter struct {
	Status  string
	DepttID int
	IssueID int
}

// ComplaintRepository 投诉数据访问接口
// 读操作返回联表后的 ComplaintView
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *model.Complaint) error
	GetByID(ctx context.Context, id int) (*model.ComplaintView, error)
	List(ctx context.Context, filter ComplaintFilter) ([]model.ComplaintView, error)
	Update(ctx context.Context, complaint *model.Complaint) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type complaintRepo struct {
	db *gorm.DB
}

// NewComplaintRepo 创建 ComplaintRepository 实例
func NewComplaintRepo(db *gorm.DB) ComplaintRepository {
	return &complaintRepo{db: db}
}

const complaintViewColumns = "c.complaint_id, c.deptt_id, d.deptt_name, c.issue_id, i.issue_type, " +
	"c.complaint_detail, c.status, c.created_at"

// viewQuery 构建投诉联表查询
func (r *complaintRepo) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("complaints AS c").
		Select(complaintViewColumns).
		Joins("JOIN departments AS d ON d.deptt_id = c.deptt_id").
		Joins("JOIN issues AS i ON i.issue_id = c.issue_id")
}

func (r *complaintRepo) Create(ctx context.Context, complaint *model.Complaint) error {
	return translateError(r.db.WithContext(ctx).Create(complaint).Error)
}

func (r *complaintRepo) GetByID(ctx context.Context, id int) (*model.ComplaintView, error) {
	var view model.ComplaintView
	res := r.viewQuery(ctx).Where("c.complaint_id = ?", id).Limit(1).Scan(&view)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &view, nil
}

func (r *complaintRepo) List(ctx context.Context, filter ComplaintFilter) ([]model.ComplaintView, error) {
	q := r.viewQuery(ctx)
	if filter.Status != "" {
		q = q.Where("c.status = ?", filter.Status)
	}
	if filter.DepttID > 0 {
		q = q.Where("c.deptt_id = ?", filter.DepttID)
	}
	if filter.IssueID > 0 {
		q = q.Where("c.issue_id = ?", filter.IssueID)
	}

	views := make([]model.ComplaintView, 0)
	err := q.Order("c.created_at DESC").Order("c.complaint_id DESC").Scan(&views).Error
	return views, err
}

func (r *complaintRepo) Update(ctx context.Context, complaint *model.Complaint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Where("complaint_id = ?", complaint.ComplaintID).
		Updates(map[string]interface{}{
			"deptt_id":         complaint.DepttID,
			"issue_id":         complaint.IssueID,
			"complaint_detail": complaint.ComplaintDetail,
			"status":           complaint.Status,
		})
	return res.RowsAffected, translateError(res.Error)
}

func (r *complaintRepo) Delete(ctx context.Context, id int) (int64, error) {
	res := r.db.WithContext(ctx).Where("complaint_id = ?", id).Delete(&model.Complaint{})
	return res.RowsAffected, res.Error
}
