package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"complaint-desk/internal/dto"
	"complaint-desk/internal/service"
	"complaint-desk/pkg/response"
)

// 部门模块错误码
const (
	codeDepartmentNotFound    = 20001
	codeInvalidDepartmentName = 20002
	codeDepartmentInUse       = 20003
)

// DepartmentHandler 部门模块 HTTP 处理器
type DepartmentHandler struct {
	deptSvc service.DepartmentService
}

// NewDepartmentHandler 创建 DepartmentHandler
func NewDepartmentHandler(deptSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{deptSvc: deptSvc}
}

// ListDepartments godoc
// @Summary 获取全部部门
// @Tags Departments
// @Produce json
// @Success 200 {array} model.Department
// @Failure 500 {object} response.ErrorBody
// @Router /departments [get]
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	depts, err := h.deptSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, depts)
}

// GetDepartment godoc
// @Summary 获取部门详情
// @Tags Departments
// @Produce json
// @Param id path int true "部门ID"
// @Success 200 {object} model.Department
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /departments/{id} [get]
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	dept, err := h.deptSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, dept)
}

// CreateDepartment godoc
// @Summary 创建部门
// @Description 名称去除首尾空白并转为大写，长度 1-100
// @Tags Departments
// @Accept json
// @Produce json
// @Param department body dto.CreateDepartmentRequest true "部门信息"
// @Success 201 {object} response.MessageBody
// @Failure 400 {object} response.ErrorBody
// @Router /departments/new [post]
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "All department fields are required and must be valid")
		return
	}

	if _, err := h.deptSvc.Create(c.Request.Context(), &req); err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.Created(c, "Department created successfully")
}

// UpdateDepartment godoc
// @Summary 更新部门名称
// @Tags Departments
// @Accept json
// @Produce json
// @Param id path int true "部门ID"
// @Param department body dto.UpdateDepartmentRequest true "部门信息"
// @Success 200 {object} response.MessageBody
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /departments/{id} [put]
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "Department name is required to update")
		return
	}

	if err := h.deptSvc.Update(c.Request.Context(), id, &req); err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.Message(c, "Department updated successfully")
}

// DeleteDepartment godoc
// @Summary 删除部门
// @Description 仍被投诉引用的部门不可删除
// @Tags Departments
// @Produce json
// @Param id path int true "部门ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /departments/{id} [delete]
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.deptSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.Message(c, "Department deleted successfully")
}

// handleDepartmentError 统一处理部门模块业务错误
func (h *DepartmentHandler) handleDepartmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, codeDepartmentNotFound, "Department not found")
	case errors.Is(err, service.ErrInvalidDepartmentName):
		response.BadRequest(c, codeInvalidDepartmentName, err.Error())
	case errors.Is(err, service.ErrDepartmentInUse):
		response.Conflict(c, codeDepartmentInUse, "Department is still referenced by complaints")
	default:
		response.InternalError(c)
	}
}
