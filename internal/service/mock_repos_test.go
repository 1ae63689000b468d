package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"complaint-desk/internal/model"
	"complaint-desk/internal/repository"
)

// ── Mock DepartmentRepository ──

type mockDeptRepo struct {
	departments map[int]*model.Department
	nextID      int
	creates     int
	deleteErr   error
	// complaints 由 mockComplaintRepo 共享，用于 CountComplaints
	complaints *mockComplaintRepo
}

func newMockDeptRepo() *mockDeptRepo {
	return &mockDeptRepo{departments: make(map[int]*model.Department), nextID: 1}
}

func (m *mockDeptRepo) Create(_ context.Context, dept *model.Department) error {
	m.creates++
	dept.DepttID = m.nextID
	m.nextID++
	cp := *dept
	m.departments[dept.DepttID] = &cp
	return nil
}

func (m *mockDeptRepo) GetByID(_ context.Context, id int) (*model.Department, error) {
	if d, ok := m.departments[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) List(_ context.Context) ([]model.Department, error) {
	result := make([]model.Department, 0, len(m.departments))
	for _, d := range m.departments {
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DepttID < result[j].DepttID })
	return result, nil
}

func (m *mockDeptRepo) UpdateName(_ context.Context, id int, name string) (int64, error) {
	d, ok := m.departments[id]
	if !ok {
		return 0, nil
	}
	d.DepttName = name
	return 1, nil
}

func (m *mockDeptRepo) Delete(_ context.Context, id int) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	if _, ok := m.departments[id]; !ok {
		return 0, nil
	}
	delete(m.departments, id)
	return 1, nil
}

func (m *mockDeptRepo) CountComplaints(_ context.Context, id int) (int64, error) {
	if m.complaints == nil {
		return 0, nil
	}
	var n int64
	for _, c := range m.complaints.complaints {
		if c.DepttID == id {
			n++
		}
	}
	return n, nil
}

// ── Mock IssueRepository ──

type mockIssueRepo struct {
	issues     map[int]*model.Issue
	nextID     int
	creates    int
	deleteErr  error
	complaints *mockComplaintRepo
}

func newMockIssueRepo() *mockIssueRepo {
	return &mockIssueRepo{issues: make(map[int]*model.Issue), nextID: 1}
}

func (m *mockIssueRepo) Create(_ context.Context, issue *model.Issue) error {
	m.creates++
	issue.IssueID = m.nextID
	m.nextID++
	cp := *issue
	m.issues[issue.IssueID] = &cp
	return nil
}

func (m *mockIssueRepo) GetByID(_ context.Context, id int) (*model.Issue, error) {
	if i, ok := m.issues[id]; ok {
		cp := *i
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIssueRepo) List(_ context.Context) ([]model.Issue, error) {
	result := make([]model.Issue, 0, len(m.issues))
	for _, i := range m.issues {
		result = append(result, *i)
	}
	sort.Slice(result, func(a, b int) bool { return result[a].IssueID < result[b].IssueID })
	return result, nil
}

func (m *mockIssueRepo) UpdateType(_ context.Context, id int, issueType string) (int64, error) {
	i, ok := m.issues[id]
	if !ok {
		return 0, nil
	}
	i.IssueType = issueType
	return 1, nil
}

func (m *mockIssueRepo) Delete(_ context.Context, id int) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	if _, ok := m.issues[id]; !ok {
		return 0, nil
	}
	delete(m.issues, id)
	return 1, nil
}

func (m *mockIssueRepo) CountComplaints(_ context.Context, id int) (int64, error) {
	if m.complaints == nil {
		return 0, nil
	}
	var n int64
	for _, c := range m.complaints.complaints {
		if c.IssueID == id {
			n++
		}
	}
	return n, nil
}

// ── Mock ComplaintRepository ──

// mockComplaintRepo 读操作在读取时联表 mockDeptRepo / mockIssueRepo
type mockComplaintRepo struct {
	complaints map[int]*model.Complaint
	nextID     int
	depts      *mockDeptRepo
	issues     *mockIssueRepo
	listCalls  int
	// beforeWrite 在 Create / Update 写入前调用，返回非 nil 时作为写入错误
	beforeWrite func() error
}

func newMockComplaintRepo(depts *mockDeptRepo, issues *mockIssueRepo) *mockComplaintRepo {
	m := &mockComplaintRepo{
		complaints: make(map[int]*model.Complaint),
		nextID:     1,
		depts:      depts,
		issues:     issues,
	}
	depts.complaints = m
	issues.complaints = m
	return m
}

func (m *mockComplaintRepo) Create(_ context.Context, c *model.Complaint) error {
	if m.beforeWrite != nil {
		if err := m.beforeWrite(); err != nil {
			return err
		}
	}
	c.ComplaintID = m.nextID
	m.nextID++
	c.CreatedAt = time.Now()
	cp := *c
	m.complaints[c.ComplaintID] = &cp
	return nil
}

func (m *mockComplaintRepo) view(c *model.Complaint) model.ComplaintView {
	v := model.ComplaintView{
		ComplaintID:     c.ComplaintID,
		DepttID:         c.DepttID,
		IssueID:         c.IssueID,
		ComplaintDetail: c.ComplaintDetail,
		Status:          c.Status,
		CreatedAt:       c.CreatedAt,
	}
	if d, ok := m.depts.departments[c.DepttID]; ok {
		v.DepttName = d.DepttName
	}
	if i, ok := m.issues.issues[c.IssueID]; ok {
		v.IssueType = i.IssueType
	}
	return v
}

func (m *mockComplaintRepo) GetByID(_ context.Context, id int) (*model.ComplaintView, error) {
	c, ok := m.complaints[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	v := m.view(c)
	return &v, nil
}

func (m *mockComplaintRepo) List(_ context.Context, f repository.ComplaintFilter) ([]model.ComplaintView, error) {
	m.listCalls++
	result := make([]model.ComplaintView, 0, len(m.complaints))
	for _, c := range m.complaints {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.DepttID > 0 && c.DepttID != f.DepttID {
			continue
		}
		if f.IssueID > 0 && c.IssueID != f.IssueID {
			continue
		}
		result = append(result, m.view(c))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ComplaintID > result[j].ComplaintID })
	return result, nil
}

func (m *mockComplaintRepo) Update(_ context.Context, c *model.Complaint) (int64, error) {
	if m.beforeWrite != nil {
		if err := m.beforeWrite(); err != nil {
			return 0, err
		}
	}
	existing, ok := m.complaints[c.ComplaintID]
	if !ok {
		return 0, nil
	}
	existing.DepttID = c.DepttID
	existing.IssueID = c.IssueID
	existing.ComplaintDetail = c.ComplaintDetail
	existing.Status = c.Status
	return 1, nil
}

func (m *mockComplaintRepo) Delete(_ context.Context, id int) (int64, error) {
	if _, ok := m.complaints[id]; !ok {
		return 0, nil
	}
	delete(m.complaints, id)
	return 1, nil
}

// ── Mock Cache（内存标签缓存） ──

type mockCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	tags    map[string]map[string]bool
	gens    map[string]int64
}

func newMockCache() *mockCache {
	return &mockCache{
		entries: make(map[string][]byte),
		tags:    make(map[string]map[string]bool),
		gens:    make(map[string]int64),
	}
}

func (m *mockCache) GetJSON(_ context.Context, key string, dst interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

func (m *mockCache) TagVersions(_ context.Context, tags ...string) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	versions := make([]int64, len(tags))
	for i, t := range tags {
		versions[i] = m.gens[t]
	}
	return versions, nil
}

func (m *mockCache) SetJSONIfFresh(_ context.Context, key string, v interface{}, _ time.Duration, versions []int64, tags ...string) (bool, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range tags {
		if m.gens[t] != versions[i] {
			return false, nil
		}
	}
	m.entries[key] = data
	for _, t := range tags {
		if m.tags[t] == nil {
			m.tags[t] = make(map[string]bool)
		}
		m.tags[t][key] = true
	}
	return true, nil
}

func (m *mockCache) InvalidateTags(_ context.Context, tags ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tags {
		m.gens[t]++
		for key := range m.tags[t] {
			delete(m.entries, key)
		}
		delete(m.tags, t)
	}
	return nil
}

func (m *mockCache) has(prefix string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// ── 测试装配 ──

type testRepos struct {
	repo       *repository.Repository
	depts      *mockDeptRepo
	issues     *mockIssueRepo
	complaints *mockComplaintRepo
}

func newTestRepos() *testRepos {
	depts := newMockDeptRepo()
	issues := newMockIssueRepo()
	complaints := newMockComplaintRepo(depts, issues)
	return &testRepos{
		repo: &repository.Repository{
			Department: depts,
			Issue:      issues,
			Complaint:  complaints,
		},
		depts:      depts,
		issues:     issues,
		complaints: complaints,
	}
}

func testCacheSupport(c Cache) *cacheSupport {
	return newCacheSupport(c, time.Minute, zap.NewNop())
}
