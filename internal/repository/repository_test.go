package repository_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"complaint-desk/internal/model"
	"complaint-desk/internal/repository"
	"complaint-desk/pkg/database"
)

// ── 测试辅助 ──

// newTestDB 为每个测试创建独立的 sqlite 内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate 失败: %v", err)
	}
	return db
}

func seed(t *testing.T, repo *repository.Repository) (*model.Department, *model.Issue) {
	t.Helper()
	ctx := context.Background()
	dept := &model.Department{DepttName: "ENGINEERING"}
	if err := repo.Department.Create(ctx, dept); err != nil {
		t.Fatalf("创建部门失败: %v", err)
	}
	issue := &model.Issue{IssueType: "Noise"}
	if err := repo.Issue.Create(ctx, issue); err != nil {
		t.Fatalf("创建问题类型失败: %v", err)
	}
	return dept, issue
}

// ── Department ──

func TestDepartmentRepo_CRUD(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()

	dept := &model.Department{DepttName: "HR"}
	if err := repo.Department.Create(ctx, dept); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if dept.DepttID == 0 {
		t.Fatal("期望生成自增 ID")
	}

	got, err := repo.Department.GetByID(ctx, dept.DepttID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if got.DepttName != "HR" {
		t.Errorf("期望 HR，实际=%s", got.DepttName)
	}

	n, err := repo.Department.UpdateName(ctx, dept.DepttID, "FINANCE")
	if err != nil || n != 1 {
		t.Fatalf("UpdateName 期望影响 1 行，实际=%d err=%v", n, err)
	}
	got, _ = repo.Department.GetByID(ctx, dept.DepttID)
	if got.DepttName != "FINANCE" {
		t.Errorf("期望 FINANCE，实际=%s", got.DepttName)
	}

	n, err = repo.Department.Delete(ctx, dept.DepttID)
	if err != nil || n != 1 {
		t.Fatalf("Delete 期望影响 1 行，实际=%d err=%v", n, err)
	}
	if _, err := repo.Department.GetByID(ctx, dept.DepttID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("删除后期望 ErrRecordNotFound，实际: %v", err)
	}
}

func TestDepartmentRepo_MissingRowsAffectNothing(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()
	seed(t, repo)

	n, err := repo.Department.UpdateName(ctx, 999, "X")
	if err != nil || n != 0 {
		t.Errorf("更新不存在的部门期望影响 0 行，实际=%d err=%v", n, err)
	}
	n, err = repo.Department.Delete(ctx, 999)
	if err != nil || n != 0 {
		t.Errorf("删除不存在的部门期望影响 0 行，实际=%d err=%v", n, err)
	}
	list, _ := repo.Department.List(ctx)
	if len(list) != 1 {
		t.Errorf("行数不应变化，期望 1，实际=%d", len(list))
	}
}

func TestDepartmentRepo_ListOrderedByID(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()
	for _, name := range []string{"B", "A", "C"} {
		_ = repo.Department.Create(ctx, &model.Department{DepttName: name})
	}
	list, err := repo.Department.List(ctx)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(list) != 3 || list[0].DepttName != "B" || list[2].DepttName != "C" {
		t.Errorf("期望按 ID 升序返回，实际=%+v", list)
	}
}

func TestDepartmentRepo_CountComplaints(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()
	dept, issue := seed(t, repo)

	_ = repo.Complaint.Create(ctx, &model.Complaint{DepttID: dept.DepttID, IssueID: issue.IssueID, ComplaintDetail: "a", Status: model.StatusPending})
	_ = repo.Complaint.Create(ctx, &model.Complaint{DepttID: dept.DepttID, IssueID: issue.IssueID, ComplaintDetail: "b", Status: model.StatusPending})

	n, err := repo.Department.CountComplaints(ctx, dept.DepttID)
	if err != nil || n != 2 {
		t.Errorf("期望 2 条关联投诉，实际=%d err=%v", n, err)
	}
	n, _ = repo.Issue.CountComplaints(ctx, issue.IssueID)
	if n != 2 {
		t.Errorf("期望问题类型关联 2 条投诉，实际=%d", n)
	}
}

// ── Issue ──

func TestIssueRepo_UpdateAndDelete(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()
	_, issue := seed(t, repo)

	n, err := repo.Issue.UpdateType(ctx, issue.IssueID, "Billing")
	if err != nil || n != 1 {
		t.Fatalf("UpdateType 期望影响 1 行，实际=%d err=%v", n, err)
	}
	got, _ := repo.Issue.GetByID(ctx, issue.IssueID)
	if got.IssueType != "Billing" {
		t.Errorf("期望 Billing，实际=%s", got.IssueType)
	}

	if n, _ := repo.Issue.Delete(ctx, issue.IssueID); n != 1 {
		t.Errorf("Delete 期望影响 1 行，实际=%d", n)
	}
	if _, err := repo.Issue.GetByID(ctx, issue.IssueID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 ErrRecordNotFound，实际: %v", err)
	}
}

// ── Complaint ──

func TestComplaintRepo_ViewJoinsCurrentNames(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()
	dept, issue := seed(t, repo)

	c := &model.Complaint{DepttID: dept.DepttID, IssueID: issue.IssueID, ComplaintDetail: "Loud fan", Status: model.StatusPending}
	if err := repo.Complaint.Create(ctx, c); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	view, err := repo.Complaint.GetByID(ctx, c.ComplaintID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if view.DepttName != "ENGINEERING" || view.IssueType != "Noise" {
		t.Errorf("联表字段不符: %+v", view)
	}

	// 重命名后展示字段应随之变化
	_, _ = repo.Department.UpdateName(ctx, dept.DepttID, "FACILITIES")
	_, _ = repo.Issue.UpdateType(ctx, issue.IssueID, "Hardware")

	list, err := repo.Complaint.List(ctx, repository.ComplaintFilter{})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("期望 1 条投诉，实际=%d", len(list))
	}
	if list[0].DepttName != "FACILITIES" || list[0].IssueType != "Hardware" {
		t.Errorf("期望展示当前名称，实际: %+v", list[0])
	}
}

func TestComplaintRepo_GetByID_NotFound(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	if _, err := repo.Complaint.GetByID(context.Background(), 42); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 ErrRecordNotFound，实际: %v", err)
	}
}

func TestComplaintRepo_ListFilters(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()
	dept, issue := seed(t, repo)
	other := &model.Department{DepttName: "SALES"}
	_ = repo.Department.Create(ctx, other)

	_ = repo.Complaint.Create(ctx, &model.Complaint{DepttID: dept.DepttID, IssueID: issue.IssueID, ComplaintDetail: "1", Status: model.StatusPending})
	_ = repo.Complaint.Create(ctx, &model.Complaint{DepttID: dept.DepttID, IssueID: issue.IssueID, ComplaintDetail: "2", Status: model.StatusClosed})
	_ = repo.Complaint.Create(ctx, &model.Complaint{DepttID: other.DepttID, IssueID: issue.IssueID, ComplaintDetail: "3", Status: model.StatusPending})

	list, _ := repo.Complaint.List(ctx, repository.ComplaintFilter{Status: model.StatusPending})
	if len(list) != 2 {
		t.Errorf("status 过滤期望 2 条，实际=%d", len(list))
	}
	list, _ = repo.Complaint.List(ctx, repository.ComplaintFilter{DepttID: other.DepttID})
	if len(list) != 1 || list[0].ComplaintDetail != "3" {
		t.Errorf("部门过滤结果不符: %+v", list)
	}
	list, _ = repo.Complaint.List(ctx, repository.ComplaintFilter{})
	if len(list) != 3 {
		t.Errorf("无过滤期望 3 条，实际=%d", len(list))
	}
}

func TestComplaintRepo_UpdateAndDelete(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()
	dept, issue := seed(t, repo)

	c := &model.Complaint{DepttID: dept.DepttID, IssueID: issue.IssueID, ComplaintDetail: "old", Status: model.StatusPending}
	_ = repo.Complaint.Create(ctx, c)

	c.ComplaintDetail = "new"
	c.Status = model.StatusResolved
	n, err := repo.Complaint.Update(ctx, c)
	if err != nil || n != 1 {
		t.Fatalf("Update 期望影响 1 行，实际=%d err=%v", n, err)
	}
	view, _ := repo.Complaint.GetByID(ctx, c.ComplaintID)
	if view.ComplaintDetail != "new" || view.Status != model.StatusResolved {
		t.Errorf("更新结果不符: %+v", view)
	}

	missing := &model.Complaint{ComplaintID: 999, DepttID: dept.DepttID, IssueID: issue.IssueID, ComplaintDetail: "x", Status: model.StatusPending}
	if n, _ := repo.Complaint.Update(ctx, missing); n != 0 {
		t.Errorf("更新不存在的投诉期望影响 0 行，实际=%d", n)
	}

	if n, _ := repo.Complaint.Delete(ctx, c.ComplaintID); n != 1 {
		t.Errorf("Delete 期望影响 1 行，实际=%d", n)
	}
	if n, _ := repo.Complaint.Delete(ctx, c.ComplaintID); n != 0 {
		t.Errorf("重复删除期望影响 0 行，实际=%d", n)
	}
}

// ── 外键约束 ──

// tableDDL 读取 sqlite_master 中的建表语句，去掉引号并转为小写便于比对
func tableDDL(t *testing.T, db *gorm.DB, table string) string {
	t.Helper()
	var ddl string
	if err := db.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&ddl).Error; err != nil {
		t.Fatalf("读取 %s 建表语句失败: %v", table, err)
	}
	return strings.ToLower(strings.NewReplacer("`", "", `"`, "").Replace(ddl))
}

func TestSchema_ForeignKeysOnComplaints(t *testing.T) {
	db := newTestDB(t)

	complaints := tableDDL(t, db, "complaints")
	for _, want := range []string{
		"foreign key (deptt_id) references departments(deptt_id) on delete restrict",
		"foreign key (issue_id) references issues(issue_id) on delete restrict",
	} {
		if !strings.Contains(complaints, want) {
			t.Errorf("complaints 缺少约束 %q，DDL=%s", want, complaints)
		}
	}

	for _, table := range []string{"departments", "issues"} {
		if ddl := tableDDL(t, db, table); strings.Contains(ddl, "references") {
			t.Errorf("%s 不应带外键，DDL=%s", table, ddl)
		}
	}
}

func TestDepartmentRepo_DeleteReferencedRefused(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()
	dept, issue := seed(t, repo)
	if err := repo.Complaint.Create(ctx, &model.Complaint{DepttID: dept.DepttID, IssueID: issue.IssueID, ComplaintDetail: "x", Status: model.StatusPending}); err != nil {
		t.Fatal(err)
	}

	n, err := repo.Department.Delete(ctx, dept.DepttID)
	if !errors.Is(err, repository.ErrForeignKeyViolation) {
		t.Fatalf("期望 ErrForeignKeyViolation，实际 n=%d err=%v", n, err)
	}
	if _, err := repo.Department.GetByID(ctx, dept.DepttID); err != nil {
		t.Errorf("被引用的部门应仍存在: %v", err)
	}
}

func TestIssueRepo_DeleteReferencedRefused(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()
	dept, issue := seed(t, repo)
	if err := repo.Complaint.Create(ctx, &model.Complaint{DepttID: dept.DepttID, IssueID: issue.IssueID, ComplaintDetail: "x", Status: model.StatusPending}); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.Issue.Delete(ctx, issue.IssueID); !errors.Is(err, repository.ErrForeignKeyViolation) {
		t.Fatalf("期望 ErrForeignKeyViolation，实际=%v", err)
	}
}

func TestComplaintRepo_UnknownReferencesRefused(t *testing.T) {
	repo := repository.NewRepository(newTestDB(t))
	ctx := context.Background()
	dept, issue := seed(t, repo)

	err := repo.Complaint.Create(ctx, &model.Complaint{DepttID: 999, IssueID: issue.IssueID, ComplaintDetail: "x", Status: model.StatusPending})
	if !errors.Is(err, repository.ErrForeignKeyViolation) {
		t.Errorf("未知部门应被外键拒绝，实际=%v", err)
	}

	c := &model.Complaint{DepttID: dept.DepttID, IssueID: issue.IssueID, ComplaintDetail: "x", Status: model.StatusPending}
	if err := repo.Complaint.Create(ctx, c); err != nil {
		t.Fatal(err)
	}
	c.IssueID = 999
	if _, err := repo.Complaint.Update(ctx, c); !errors.Is(err, repository.ErrForeignKeyViolation) {
		t.Errorf("更新为未知问题类型应被外键拒绝，实际=%v", err)
	}
}
