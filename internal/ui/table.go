package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"complaint-desk/internal/model"
)

// SortDir 排序方向
type SortDir int

const (
	Unsorted SortDir = iota
	Asc
	Desc
)

// Column 表格列定义
type Column[T any] struct {
	Key    string
	Header string
	Cell   func(T) string
	Less   func(a, b T) bool // nil 表示按 Cell 字符串比较
}

// 行操作
const (
	ActionCopyID = "copy-id"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// RowActions 每行可用的操作，按菜单顺序
var RowActions = []string{ActionCopyID, ActionEdit, ActionDelete}

// Clipboard 复制 ID 的目标
type Clipboard interface {
	WriteText(text string) error
}

// Table 可排序表格。OnEdit / OnDelete 由页面注入
type Table[T any] struct {
	Columns   []Column[T]
	rows      []T
	id        func(T) int
	sortKey   string
	sortDir   SortDir
	Clipboard Clipboard
	OnEdit    func(T)
	OnDelete  func(T)
}

// NewTable 创建表格，id 用于复制 ID 操作
func NewTable[T any](columns []Column[T], id func(T) int) *Table[T] {
	return &Table[T]{Columns: columns, id: id}
}

// SetRows 替换数据
func (t *Table[T]) SetRows(rows []T) {
	t.rows = rows
}

// ToggleSort 对同一列依次切换升序 / 降序，切换到新列时从升序开始
func (t *Table[T]) ToggleSort(key string) {
	if t.sortKey == key && t.sortDir == Asc {
		t.sortDir = Desc
		return
	}
	t.sortKey = key
	t.sortDir = Asc
}

// Sort 当前排序列与方向
func (t *Table[T]) Sort() (string, SortDir) {
	return t.sortKey, t.sortDir
}

// Rows 按当前排序返回数据副本
func (t *Table[T]) Rows() []T {
	out := make([]T, len(t.rows))
	copy(out, t.rows)

	col, ok := t.column(t.sortKey)
	if !ok || t.sortDir == Unsorted {
		return out
	}
	less := col.Less
	if less == nil {
		less = func(a, b T) bool { return col.Cell(a) < col.Cell(b) }
	}
	sort.SliceStable(out, func(i, j int) bool {
		if t.sortDir == Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Headers 列标题，已排序列带方向标记
func (t *Table[T]) Headers() []string {
	hs := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		h := c.Header
		if c.Key == t.sortKey {
			switch t.sortDir {
			case Asc:
				h += " ↑"
			case Desc:
				h += " ↓"
			}
		}
		hs[i] = h
	}
	return hs
}

// Cells 行的各列文本
func (t *Table[T]) Cells(row T) []string {
	cs := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cs[i] = c.Cell(row)
	}
	return cs
}

// Act 执行行操作
func (t *Table[T]) Act(action string, row T) error {
	switch action {
	case ActionCopyID:
		if t.Clipboard == nil {
			return fmt.Errorf("clipboard not available")
		}
		return t.Clipboard.WriteText(strconv.Itoa(t.id(row)))
	case ActionEdit:
		if t.OnEdit != nil {
			t.OnEdit(row)
		}
		return nil
	case ActionDelete:
		if t.OnDelete != nil {
			t.OnDelete(row)
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

func (t *Table[T]) column(key string) (Column[T], bool) {
	for _, c := range t.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

// ── 各资源列定义 ──

// DepartmentColumns 部门表格列
func DepartmentColumns() []Column[model.Department] {
	return []Column[model.Department]{
		{
			Key: "deptt_id", Header: "ID",
			Cell: func(d model.Department) string { return strconv.Itoa(d.DepttID) },
			Less: func(a, b model.Department) bool { return a.DepttID < b.DepttID },
		},
		{
			Key: "deptt_name", Header: "Department",
			Cell: func(d model.Department) string { return d.DepttName },
		},
	}
}

// IssueColumns 问题类型表格列
func IssueColumns() []Column[model.Issue] {
	return []Column[model.Issue]{
		{
			Key: "issue_id", Header: "ID",
			Cell: func(i model.Issue) string { return strconv.Itoa(i.IssueID) },
			Less: func(a, b model.Issue) bool { return a.IssueID < b.IssueID },
		},
		{
			Key: "issue_type", Header: "Issue Type",
			Cell: func(i model.Issue) string { return i.IssueType },
		},
	}
}

// detailWidth 列表中详情列的截断宽度
const detailWidth = 40

// ComplaintColumns 投诉表格列
func ComplaintColumns() []Column[model.ComplaintView] {
	return []Column[model.ComplaintView]{
		{
			Key: "complaint_id", Header: "ID",
			Cell: func(c model.ComplaintView) string { return strconv.Itoa(c.ComplaintID) },
			Less: func(a, b model.ComplaintView) bool { return a.ComplaintID < b.ComplaintID },
		},
		{Key: "deptt_name", Header: "Department", Cell: func(c model.ComplaintView) string { return c.DepttName }},
		{Key: "issue_type", Header: "Issue Type", Cell: func(c model.ComplaintView) string { return c.IssueType }},
		{Key: "complaint_detail", Header: "Details", Cell: func(c model.ComplaintView) string { return truncate(c.ComplaintDetail, detailWidth) }},
		{Key: "status", Header: "Status", Cell: func(c model.ComplaintView) string { return StatusBadge(c.Status).String() }},
		{
			Key: "created_at", Header: "Created",
			Cell: func(c model.ComplaintView) string { return c.CreatedAt.Local().Format("2006-01-02") },
			Less: func(a, b model.ComplaintView) bool { return a.CreatedAt.Before(b.CreatedAt) },
		},
	}
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
