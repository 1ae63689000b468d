package ui

import (
	"context"

	"complaint-desk/internal/client"
	"complaint-desk/internal/dto"
	"complaint-desk/internal/model"
)

// Record 正在编辑的记录
type Record struct {
	ID    int
	Value string
}

// Mutator 单字段资源的写接口
type Mutator interface {
	Create(ctx context.Context, value string) (string, error)
	Update(ctx context.Context, id int, value string) (string, error)
}

// Form 部门 / 问题类型表单状态。editing 为 nil 时为新建模式
type Form struct {
	noun    string
	schema  FieldSchema
	mut     Mutator
	editing *Record

	Value   string
	Error   string // 字段错误
	Message string // 最近一次成功提示
}

// NewForm 创建新建模式的表单，noun 如 "Department"
func NewForm(noun string, schema FieldSchema, mut Mutator) *Form {
	return &Form{noun: noun, schema: schema, mut: mut}
}

// Edit 进入编辑模式并填充当前值
func (f *Form) Edit(r Record) {
	f.editing = &r
	f.Value = r.Value
	f.Error = ""
}

// CancelEdit 退出编辑模式并清空输入
func (f *Form) CancelEdit() {
	f.editing = nil
	f.reset()
}

// Editing 当前编辑的记录，新建模式返回 nil
func (f *Form) Editing() *Record {
	return f.editing
}

// Title 表单标题
func (f *Form) Title() string {
	if f.editing != nil {
		return "Edit " + f.noun
	}
	return "Create New " + f.noun
}

// Submit 校验并提交。成功时清空输入、退出编辑模式；失败时 Error 为接口返回的提示
func (f *Form) Submit(ctx context.Context) bool {
	value, err := f.schema.Validate(f.Value)
	if err != nil {
		f.Error = err.Error()
		return false
	}

	var msg string
	if f.editing != nil {
		msg, err = f.mut.Update(ctx, f.editing.ID, value)
	} else {
		msg, err = f.mut.Create(ctx, value)
	}
	if err != nil {
		f.Error = client.ErrorMessage(err)
		return false
	}

	f.editing = nil
	f.reset()
	f.Message = msg
	return true
}

func (f *Form) reset() {
	f.Value = ""
	f.Error = ""
}

// ── 接口适配 ──

// DepartmentMutator 将 client.Client 的部门接口适配为 Mutator
type DepartmentMutator struct{ Client *client.Client }

func (m DepartmentMutator) Create(ctx context.Context, v string) (string, error) {
	return m.Client.CreateDepartment(ctx, v)
}

func (m DepartmentMutator) Update(ctx context.Context, id int, v string) (string, error) {
	return m.Client.UpdateDepartment(ctx, id, v)
}

// IssueMutator 将 client.Client 的问题类型接口适配为 Mutator
type IssueMutator struct{ Client *client.Client }

func (m IssueMutator) Create(ctx context.Context, v string) (string, error) {
	return m.Client.CreateIssue(ctx, v)
}

func (m IssueMutator) Update(ctx context.Context, id int, v string) (string, error) {
	return m.Client.UpdateIssue(ctx, id, v)
}

// ── 投诉表单 ──

// ComplaintMutator 投诉写接口（client.Client 已实现）
type ComplaintMutator interface {
	CreateComplaint(ctx context.Context, req dto.CreateComplaintRequest) (string, error)
	UpdateComplaint(ctx context.Context, id int, req dto.UpdateComplaintRequest) (string, error)
}

// 投诉表单字段名，用作 Errors 的 key
const (
	FieldDepartment = "deptt_id"
	FieldIssue      = "issue_id"
	FieldDetail     = "complaint_detail"
	FieldStatus     = "status"
)

// ComplaintForm 投诉表单状态
type ComplaintForm struct {
	mut       ComplaintMutator
	editingID int

	DepttID int
	IssueID int
	Detail  string
	Status  string

	Errors  map[string]string
	Message string
}

// NewComplaintForm 创建新建模式的投诉表单
func NewComplaintForm(mut ComplaintMutator) *ComplaintForm {
	f := &ComplaintForm{mut: mut}
	f.reset()
	return f
}

// Edit 以已有投诉填充表单
func (f *ComplaintForm) Edit(c model.ComplaintView) {
	f.editingID = c.ComplaintID
	f.DepttID = c.DepttID
	f.IssueID = c.IssueID
	f.Detail = c.ComplaintDetail
	f.Status = c.Status
	f.Errors = map[string]string{}
}

// IsEditing 是否处于编辑模式
func (f *ComplaintForm) IsEditing() bool {
	return f.editingID != 0
}

// CancelEdit 退出编辑模式并清空输入
func (f *ComplaintForm) CancelEdit() {
	f.reset()
}

// Submit 校验并提交，接口错误挂在详情字段上
func (f *ComplaintForm) Submit(ctx context.Context) bool {
	f.Errors = map[string]string{}
	if f.DepttID <= 0 {
		f.Errors[FieldDepartment] = "Department is required"
	}
	if f.IssueID <= 0 {
		f.Errors[FieldIssue] = "Issue type is required"
	}
	detail, err := ComplaintDetailSchema.Validate(f.Detail)
	if err != nil {
		f.Errors[FieldDetail] = err.Error()
	}
	status, ok := model.NormalizeStatus(f.Status)
	if !ok {
		f.Errors[FieldStatus] = "Status must be one of: pending, in progress, resolved, closed"
	}
	if len(f.Errors) > 0 {
		return false
	}

	var msg string
	if f.editingID != 0 {
		msg, err = f.mut.UpdateComplaint(ctx, f.editingID, dto.UpdateComplaintRequest{
			DepttID: f.DepttID, IssueID: f.IssueID, ComplaintDetail: detail, Status: status,
		})
	} else {
		msg, err = f.mut.CreateComplaint(ctx, dto.CreateComplaintRequest{
			DepttID: f.DepttID, IssueID: f.IssueID, ComplaintDetail: detail, Status: status,
		})
	}
	if err != nil {
		f.Errors[FieldDetail] = client.ErrorMessage(err)
		return false
	}

	f.reset()
	f.Message = msg
	return true
}

func (f *ComplaintForm) reset() {
	f.editingID = 0
	f.DepttID = 0
	f.IssueID = 0
	f.Detail = ""
	f.Status = model.StatusPending
	f.Errors = map[string]string{}
}
