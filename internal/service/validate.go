package service

import (
	"strings"
	"unicode/utf8"

	"complaint-desk/internal/model"
)

// 字段长度限制（按字符计）
const (
	DepartmentNameMaxLen  = 100
	IssueTypeMinLen       = 2
	IssueTypeMaxLen       = 50
	ComplaintDetailMaxLen = 1000
)

// NormalizeDepartmentName 去空白并转大写，结果须为 1-100 个字符
func NormalizeDepartmentName(raw string) (string, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if name == "" || utf8.RuneCountInString(name) > DepartmentNameMaxLen {
		return "", ErrInvalidDepartmentName
	}
	return name, nil
}

// NormalizeIssueType 去空白，结果须为 2-50 个字符
func NormalizeIssueType(raw string) (string, error) {
	t := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(t)
	if n < IssueTypeMinLen || n > IssueTypeMaxLen {
		return "", ErrInvalidIssueType
	}
	return t, nil
}

// NormalizeComplaintDetail 去空白，结果须为 1-1000 个字符
func NormalizeComplaintDetail(raw string) (string, error) {
	d := strings.TrimSpace(raw)
	if d == "" || utf8.RuneCountInString(d) > ComplaintDetailMaxLen {
		return "", ErrInvalidComplaintDetail
	}
	return d, nil
}

// normalizeComplaintStatus 空值回退为 fallback；fallback 也为空时视为非法
func normalizeComplaintStatus(raw, fallback string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		if fallback == "" {
			return "", ErrInvalidComplaintStatus
		}
		return fallback, nil
	}
	s, ok := model.NormalizeStatus(raw)
	if !ok {
		return "", ErrInvalidComplaintStatus
	}
	return s, nil
}
