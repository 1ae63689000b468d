package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"complaint-desk/internal/dto"
	"complaint-desk/internal/model"
	"complaint-desk/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("failed to generate spreadsheet")

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置下载响应头后写入。
// 直接读库，不经过读缓存。
type ExportService interface {
	ExportComplaints(ctx context.Context, req *dto.ComplaintListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

const complaintSheet = "Complaints"

var complaintHeaders = []interface{}{"ID", "Department", "Issue Type", "Details", "Status", "Created"}

// ExportComplaints 导出投诉列表为 Excel，列顺序与列表页一致；无数据时仅输出表头
func (s *exportService) ExportComplaints(ctx context.Context, req *dto.ComplaintListRequest) (*bytes.Buffer, string, error) {
	filter := repository.ComplaintFilter{DepttID: req.DepttID, IssueID: req.IssueID}
	if req.Status != "" {
		st, ok := model.NormalizeStatus(req.Status)
		if !ok {
			return nil, "", ErrInvalidComplaintStatus
		}
		filter.Status = st
	}

	views, err := s.repo.Complaint.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询投诉失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", complaintSheet); err != nil {
		return nil, "", s.generateFailed(err)
	}
	if err := f.SetSheetRow(complaintSheet, "A1", &complaintHeaders); err != nil {
		return nil, "", s.generateFailed(err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetCellStyle(complaintSheet, "A1", "F1", headerStyle)
	}

	for i, v := range views {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			v.ComplaintID,
			v.DepttName,
			v.IssueType,
			v.ComplaintDetail,
			v.Status,
			v.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := f.SetSheetRow(complaintSheet, cell, &row); err != nil {
			return nil, "", s.generateFailed(err)
		}
	}

	_ = f.SetColWidth(complaintSheet, "B", "C", 20)
	_ = f.SetColWidth(complaintSheet, "D", "D", 60)
	_ = f.SetColWidth(complaintSheet, "E", "F", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", s.generateFailed(err)
	}

	filename := fmt.Sprintf("complaints-%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

func (s *exportService) generateFailed(err error) error {
	s.logger.Error("生成 Excel 失败", zap.Error(err))
	return fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
}
