package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"complaint-desk/internal/dto"
	"complaint-desk/internal/service"
	"complaint-desk/pkg/response"
)

// 问题类型模块错误码
const (
	codeIssueNotFound    = 21001
	codeInvalidIssueType = 21002
	codeIssueInUse       = 21003
)

// IssueHandler 问题类型模块 HTTP 处理器
type IssueHandler struct {
	issueSvc service.IssueService
}

// NewIssueHandler 创建 IssueHandler
func NewIssueHandler(issueSvc service.IssueService) *IssueHandler {
	return &IssueHandler{issueSvc: issueSvc}
}

// ListIssues godoc
// @Summary 获取全部问题类型
// @Tags Issues
// @Produce json
// @Success 200 {array} model.Issue
// @Router /issues [get]
func (h *IssueHandler) ListIssues(c *gin.Context) {
	issues, err := h.issueSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, issues)
}

// GetIssue godoc
// @Summary 获取问题类型详情
// @Tags Issues
// @Produce json
// @Param id path int true "问题类型ID"
// @Success 200 {object} model.Issue
// @Failure 404 {object} response.ErrorBody
// @Router /issues/{id} [get]
func (h *IssueHandler) GetIssue(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	issue, err := h.issueSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleIssueError(c, err)
		return
	}

	response.OK(c, issue)
}

// CreateIssue godoc
// @Summary 创建问题类型
// @Description 去除首尾空白后长度 2-50
// @Tags Issues
// @Accept json
// @Produce json
// @Param issue body dto.CreateIssueRequest true "问题类型"
// @Success 201 {object} response.MessageBody
// @Failure 400 {object} response.ErrorBody
// @Router /issues/new [post]
func (h *IssueHandler) CreateIssue(c *gin.Context) {
	var req dto.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "All issue fields are required and must be valid")
		return
	}

	if _, err := h.issueSvc.Create(c.Request.Context(), &req); err != nil {
		h.handleIssueError(c, err)
		return
	}

	response.Created(c, "Issue created successfully")
}

// UpdateIssue godoc
// @Summary 更新问题类型
// @Tags Issues
// @Accept json
// @Produce json
// @Param id path int true "问题类型ID"
// @Param issue body dto.UpdateIssueRequest true "问题类型"
// @Success 200 {object} response.MessageBody
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /issues/{id} [put]
func (h *IssueHandler) UpdateIssue(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "Issue type is required to update")
		return
	}

	if err := h.issueSvc.Update(c.Request.Context(), id, &req); err != nil {
		h.handleIssueError(c, err)
		return
	}

	response.Message(c, "Issue updated successfully")
}

// DeleteIssue godoc
// @Summary 删除问题类型
// @Tags Issues
// @Produce json
// @Param id path int true "问题类型ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /issues/{id} [delete]
func (h *IssueHandler) DeleteIssue(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.issueSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleIssueError(c, err)
		return
	}

	response.Message(c, "Issue deleted successfully")
}

func (h *IssueHandler) handleIssueError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrIssueNotFound):
		response.NotFound(c, codeIssueNotFound, "Issue not found")
	case errors.Is(err, service.ErrInvalidIssueType):
		response.BadRequest(c, codeInvalidIssueType, err.Error())
	case errors.Is(err, service.ErrIssueInUse):
		response.Conflict(c, codeIssueInUse, "Issue type is still referenced by complaints")
	default:
		response.InternalError(c)
	}
}
