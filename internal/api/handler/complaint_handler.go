package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"complaint-desk/internal/dto"
	"complaint-desk/internal/service"
	"complaint-desk/pkg/response"
)

// 投诉模块错误码
const (
	codeComplaintNotFound         = 22001
	codeInvalidComplaintDetail    = 22002
	codeInvalidComplaintStatus    = 22003
	codeComplaintDepartmentAbsent = 22004
	codeComplaintIssueAbsent      = 22005
)

// ComplaintHandler 投诉模块 HTTP 处理器
type ComplaintHandler struct {
	complaintSvc service.ComplaintService
}

// NewComplaintHandler 创建 ComplaintHandler
func NewComplaintHandler(complaintSvc service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintSvc: complaintSvc}
}

// ListComplaints godoc
// @Summary 获取投诉列表
// @Description 联表返回部门名称与问题类型，按创建时间倒序；可按状态、部门、问题类型过滤
// @Tags Complaints
// @Produce json
// @Param status query string false "状态"
// @Param deptt_id query int false "部门ID"
// @Param issue_id query int false "问题类型ID"
// @Success 200 {array} model.ComplaintView
// @Failure 400 {object} response.ErrorBody
// @Router /complaints [get]
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	var req dto.ComplaintListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "Invalid query parameters")
		return
	}

	complaints, err := h.complaintSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleComplaintError(c, err)
		return
	}

	response.OK(c, complaints)
}

// GetComplaint godoc
// @Summary 获取投诉详情
// @Tags Complaints
// @Produce json
// @Param id path int true "投诉ID"
// @Success 200 {object} model.ComplaintView
// @Failure 404 {object} response.ErrorBody
// @Router /complaints/{id} [get]
func (h *ComplaintHandler) GetComplaint(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	complaint, err := h.complaintSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleComplaintError(c, err)
		return
	}

	response.OK(c, complaint)
}

// CreateComplaint godoc
// @Summary 创建投诉
// @Description status 可省略，默认为 pending
// @Tags Complaints
// @Accept json
// @Produce json
// @Param complaint body dto.CreateComplaintRequest true "投诉信息"
// @Success 201 {object} response.MessageBody
// @Failure 400 {object} response.ErrorBody
// @Router /complaints/new [post]
func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	var req dto.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "All complaint fields are required and must be valid")
		return
	}

	if _, err := h.complaintSvc.Create(c.Request.Context(), &req); err != nil {
		h.handleComplaintError(c, err)
		return
	}

	response.Created(c, "Complaint created successfully")
}

// UpdateComplaint godoc
// @Summary 更新投诉
// @Tags Complaints
// @Accept json
// @Produce json
// @Param id path int true "投诉ID"
// @Param complaint body dto.UpdateComplaintRequest true "投诉信息"
// @Success 200 {object} response.MessageBody
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /complaints/{id} [put]
func (h *ComplaintHandler) UpdateComplaint(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "All complaint fields are required to update")
		return
	}

	if err := h.complaintSvc.Update(c.Request.Context(), id, &req); err != nil {
		h.handleComplaintError(c, err)
		return
	}

	response.Message(c, "Complaint updated successfully")
}

// DeleteComplaint godoc
// @Summary 删除投诉
// @Tags Complaints
// @Produce json
// @Param id path int true "投诉ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody
// @Router /complaints/{id} [delete]
func (h *ComplaintHandler) DeleteComplaint(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.complaintSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleComplaintError(c, err)
		return
	}

	response.Message(c, "Complaint deleted successfully")
}

// handleComplaintError 统一处理投诉模块业务错误
func (h *ComplaintHandler) handleComplaintError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrComplaintNotFound):
		response.NotFound(c, codeComplaintNotFound, "Complaint not found")
	case errors.Is(err, service.ErrInvalidComplaintDetail):
		response.BadRequest(c, codeInvalidComplaintDetail, err.Error())
	case errors.Is(err, service.ErrInvalidComplaintStatus):
		response.BadRequest(c, codeInvalidComplaintStatus, err.Error())
	case errors.Is(err, service.ErrComplaintDepartmentMissing):
		response.BadRequest(c, codeComplaintDepartmentAbsent, "Department does not exist")
	case errors.Is(err, service.ErrComplaintIssueMissing):
		response.BadRequest(c, codeComplaintIssueAbsent, "Issue type does not exist")
	default:
		response.InternalError(c)
	}
}
