package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FieldSchema 单个文本字段的客户端校验规则：去空白后检查必填与长度
type FieldSchema struct {
	Label string
	Min   int
	Max   int
}

// 表单字段规则
var (
	DepartmentNameSchema  = FieldSchema{Label: "Department name", Min: 2, Max: 50}
	IssueTypeSchema       = FieldSchema{Label: "Issue type", Min: 2, Max: 50}
	ComplaintDetailSchema = FieldSchema{Label: "Complaint detail", Min: 1, Max: 1000}
)

// Validate 返回去空白后的值；不合法时返回面向用户的提示
func (s FieldSchema) Validate(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(v)
	switch {
	case n == 0:
		return "", fmt.Errorf("%s is required", s.Label)
	case n < s.Min:
		return "", fmt.Errorf("%s must be at least %d characters", s.Label, s.Min)
	case s.Max > 0 && n > s.Max:
		return "", fmt.Errorf("%s must be less than %d characters", s.Label, s.Max)
	}
	return v, nil
}
