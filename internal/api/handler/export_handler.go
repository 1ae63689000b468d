package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"complaint-desk/internal/dto"
	"complaint-desk/internal/service"
	"complaint-desk/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportComplaints godoc
// @Summary 导出投诉列表为 Excel
// @Tags Complaints
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param status query string false "状态"
// @Param deptt_id query int false "部门ID"
// @Param issue_id query int false "问题类型ID"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Router /complaints/export [get]
func (h *ExportHandler) ExportComplaints(c *gin.Context) {
	var req dto.ComplaintListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "Invalid query parameters")
		return
	}

	buf, filename, err := h.exportSvc.ExportComplaints(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidComplaintStatus):
		response.BadRequest(c, codeInvalidComplaintStatus, err.Error())
	default:
		response.InternalError(c)
	}
}
