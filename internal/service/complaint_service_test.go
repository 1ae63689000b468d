package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"complaint-desk/internal/dto"
	"complaint-desk/internal/model"
	"complaint-desk/internal/repository"
)

// ── 测试辅助 ──

type complaintFixture struct {
	svc    ComplaintService
	depts  DepartmentService
	issues IssueService
	repos  *testRepos
	cache  *mockCache
	dept   *model.Department
	issue  *model.Issue
}

// setupTestComplaintService 预置一个部门与一个问题类型；withCache 时三个 Service 共享同一缓存
func setupTestComplaintService(t *testing.T, withCache bool) *complaintFixture {
	t.Helper()
	repos := newTestRepos()
	logger := zap.NewNop()

	f := &complaintFixture{repos: repos}
	var cs *cacheSupport
	if withCache {
		f.cache = newMockCache()
		cs = testCacheSupport(f.cache)
	}
	f.svc = NewComplaintService(repos.repo, cs, logger)
	f.depts = NewDepartmentService(repos.repo, cs, logger)
	f.issues = NewIssueService(repos.repo, cs, logger)

	ctx := context.Background()
	var err error
	if f.dept, err = f.depts.Create(ctx, &dto.CreateDepartmentRequest{DepttName: "facilities"}); err != nil {
		t.Fatal(err)
	}
	if f.issue, err = f.issues.Create(ctx, &dto.CreateIssueRequest{IssueType: "Broken chair"}); err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *complaintFixture) create(t *testing.T, detail, status string) *model.Complaint {
	t.Helper()
	c, err := f.svc.Create(context.Background(), &dto.CreateComplaintRequest{
		DepttID:         f.dept.DepttID,
		IssueID:         f.issue.IssueID,
		ComplaintDetail: detail,
		Status:          status,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	return c
}

// ── Create 测试 ──

func TestComplaintService_Create_DefaultStatus(t *testing.T) {
	f := setupTestComplaintService(t, false)

	c := f.create(t, "  chair in room 4 is broken ", "")
	if c.Status != model.StatusPending {
		t.Errorf("期望默认状态 pending，实际=%s", c.Status)
	}
	if c.ComplaintDetail != "chair in room 4 is broken" {
		t.Errorf("详情应去除首尾空白，实际=%q", c.ComplaintDetail)
	}
}

func TestComplaintService_Create_NormalizesStatus(t *testing.T) {
	f := setupTestComplaintService(t, false)

	c := f.create(t, "x", "In Progress")
	if c.Status != model.StatusInProgress {
		t.Errorf("期望 in progress，实际=%s", c.Status)
	}
}

func TestComplaintService_Create_Invalid(t *testing.T) {
	f := setupTestComplaintService(t, false)
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.CreateComplaintRequest
		want error
	}{
		{"blank detail", dto.CreateComplaintRequest{DepttID: f.dept.DepttID, IssueID: f.issue.IssueID, ComplaintDetail: "  "}, ErrInvalidComplaintDetail},
		{"long detail", dto.CreateComplaintRequest{DepttID: f.dept.DepttID, IssueID: f.issue.IssueID, ComplaintDetail: strings.Repeat("d", 1001)}, ErrInvalidComplaintDetail},
		{"bad status", dto.CreateComplaintRequest{DepttID: f.dept.DepttID, IssueID: f.issue.IssueID, ComplaintDetail: "x", Status: "archived"}, ErrInvalidComplaintStatus},
		{"missing department", dto.CreateComplaintRequest{DepttID: 999, IssueID: f.issue.IssueID, ComplaintDetail: "x"}, ErrComplaintDepartmentMissing},
		{"missing issue", dto.CreateComplaintRequest{DepttID: f.dept.DepttID, IssueID: 999, ComplaintDetail: "x"}, ErrComplaintIssueMissing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			if _, err := f.svc.Create(ctx, &req); !errors.Is(err, tc.want) {
				t.Errorf("期望 %v，实际: %v", tc.want, err)
			}
		})
	}
	if len(f.repos.complaints.complaints) != 0 {
		t.Error("校验失败时不应写库")
	}
}

// ── 读取测试 ──

func TestComplaintService_GetByID_Joined(t *testing.T) {
	f := setupTestComplaintService(t, false)
	c := f.create(t, "x", "")

	v, err := f.svc.GetByID(context.Background(), c.ComplaintID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if v.DepttName != "FACILITIES" || v.IssueType != "Broken chair" {
		t.Errorf("联表字段不符: %+v", v)
	}

	if _, err := f.svc.GetByID(context.Background(), 12345); !errors.Is(err, ErrComplaintNotFound) {
		t.Errorf("期望 ErrComplaintNotFound，实际: %v", err)
	}
}

func TestComplaintService_List_Filter(t *testing.T) {
	f := setupTestComplaintService(t, false)
	f.create(t, "a", "pending")
	f.create(t, "b", "resolved")
	f.create(t, "c", "RESOLVED")

	all, err := f.svc.List(context.Background(), &dto.ComplaintListRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("期望 3 条，实际 %d", len(all))
	}

	resolved, err := f.svc.List(context.Background(), &dto.ComplaintListRequest{Status: "Resolved"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(resolved) != 2 {
		t.Errorf("期望 2 条 resolved，实际 %d", len(resolved))
	}

	if _, err := f.svc.List(context.Background(), &dto.ComplaintListRequest{Status: "bogus"}); !errors.Is(err, ErrInvalidComplaintStatus) {
		t.Errorf("期望 ErrInvalidComplaintStatus，实际: %v", err)
	}
}

// 部门改名后，已缓存的投诉列表应显示新名称
func TestComplaintService_RenameReflected_WithCache(t *testing.T) {
	f := setupTestComplaintService(t, true)
	ctx := context.Background()
	f.create(t, "x", "")

	before, err := f.svc.List(ctx, &dto.ComplaintListRequest{})
	if err != nil || len(before) != 1 || before[0].DepttName != "FACILITIES" {
		t.Fatalf("初始列表不符: %+v, err=%v", before, err)
	}
	calls := f.repos.complaints.listCalls

	// 命中缓存
	if _, err := f.svc.List(ctx, &dto.ComplaintListRequest{}); err != nil {
		t.Fatal(err)
	}
	if f.repos.complaints.listCalls != calls {
		t.Error("第二次读取应命中缓存")
	}

	if err := f.depts.Update(ctx, f.dept.DepttID, &dto.UpdateDepartmentRequest{DepttName: "maintenance"}); err != nil {
		t.Fatal(err)
	}
	if err := f.issues.Update(ctx, f.issue.IssueID, &dto.UpdateIssueRequest{IssueType: "Broken desk"}); err != nil {
		t.Fatal(err)
	}

	after, err := f.svc.List(ctx, &dto.ComplaintListRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if after[0].DepttName != "MAINTENANCE" || after[0].IssueType != "Broken desk" {
		t.Errorf("改名后应显示新名称: %+v", after[0])
	}
}

// ── Update / Delete 测试 ──

func TestComplaintService_Update(t *testing.T) {
	f := setupTestComplaintService(t, false)
	ctx := context.Background()
	c := f.create(t, "x", "")

	err := f.svc.Update(ctx, c.ComplaintID, &dto.UpdateComplaintRequest{
		DepttID: f.dept.DepttID, IssueID: f.issue.IssueID, ComplaintDetail: "fixed", Status: "CLOSED",
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	stored := f.repos.complaints.complaints[c.ComplaintID]
	if stored.Status != model.StatusClosed || stored.ComplaintDetail != "fixed" {
		t.Errorf("更新结果不符: %+v", stored)
	}

	err = f.svc.Update(ctx, c.ComplaintID, &dto.UpdateComplaintRequest{
		DepttID: f.dept.DepttID, IssueID: f.issue.IssueID, ComplaintDetail: "fixed", Status: "",
	})
	if !errors.Is(err, ErrInvalidComplaintStatus) {
		t.Errorf("更新时状态必填，实际: %v", err)
	}

	err = f.svc.Update(ctx, 999, &dto.UpdateComplaintRequest{
		DepttID: f.dept.DepttID, IssueID: f.issue.IssueID, ComplaintDetail: "fixed", Status: "closed",
	})
	if !errors.Is(err, ErrComplaintNotFound) {
		t.Errorf("期望 ErrComplaintNotFound，实际: %v", err)
	}
}

func TestComplaintService_Delete(t *testing.T) {
	f := setupTestComplaintService(t, true)
	ctx := context.Background()
	c := f.create(t, "x", "")

	if _, err := f.svc.List(ctx, &dto.ComplaintListRequest{}); err != nil {
		t.Fatal(err)
	}
	if err := f.svc.Delete(ctx, c.ComplaintID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	list, _ := f.svc.List(ctx, &dto.ComplaintListRequest{})
	if len(list) != 0 {
		t.Errorf("删除后列表应为空，实际 %d", len(list))
	}
	if err := f.svc.Delete(ctx, c.ComplaintID); !errors.Is(err, ErrComplaintNotFound) {
		t.Errorf("期望 ErrComplaintNotFound，实际: %v", err)
	}
}

// 校验通过后部门被删除，写入时的外键冲突映射为对应的引用缺失错误
func TestComplaintService_Create_ReferenceDeletedBeforeWrite(t *testing.T) {
	f := setupTestComplaintService(t, false)
	f.repos.complaints.beforeWrite = func() error {
		delete(f.repos.depts.departments, f.dept.DepttID)
		return fmt.Errorf("%w: FOREIGN KEY constraint failed", repository.ErrForeignKeyViolation)
	}

	_, err := f.svc.Create(context.Background(), &dto.CreateComplaintRequest{
		DepttID: f.dept.DepttID, IssueID: f.issue.IssueID, ComplaintDetail: "leaking roof",
	})
	if !errors.Is(err, ErrComplaintDepartmentMissing) {
		t.Errorf("期望 ErrComplaintDepartmentMissing，实际=%v", err)
	}
}

func TestComplaintService_Update_IssueDeletedBeforeWrite(t *testing.T) {
	f := setupTestComplaintService(t, false)
	c := f.create(t, "leaking roof", "")
	f.repos.complaints.beforeWrite = func() error {
		delete(f.repos.issues.issues, f.issue.IssueID)
		return fmt.Errorf("%w: violates foreign key constraint", repository.ErrForeignKeyViolation)
	}

	err := f.svc.Update(context.Background(), c.ComplaintID, &dto.UpdateComplaintRequest{
		DepttID: f.dept.DepttID, IssueID: f.issue.IssueID, ComplaintDetail: "still leaking", Status: "pending",
	})
	if !errors.Is(err, ErrComplaintIssueMissing) {
		t.Errorf("期望 ErrComplaintIssueMissing，实际=%v", err)
	}
}
