package model

import "strings"

// 投诉状态取值（统一小写存储）
const (
	StatusPending    = "pending"
	StatusInProgress = "in progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

// Statuses 全部合法状态，按处理流程排序
var Statuses = []string{StatusPending, StatusInProgress, StatusResolved, StatusClosed}

// 状态徽标样式
const (
	VariantDefault     = "default"
	VariantSecondary   = "secondary"
	VariantOutline     = "outline"
	VariantDestructive = "destructive"
)

// NormalizeStatus 去除首尾空白并转小写，返回是否为合法状态
func NormalizeStatus(s string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(s))
	for _, st := range Statuses {
		if n == st {
			return n, true
		}
	}
	return n, false
}

// StatusVariant 状态到徽标样式的映射（大小写不敏感），未知状态回退为 secondary
func StatusVariant(status string) string {
	switch strings.ToLower(status) {
	case StatusPending:
		return VariantSecondary
	case StatusInProgress:
		return VariantDefault
	case StatusResolved:
		return VariantOutline
	case StatusClosed:
		return VariantDestructive
	default:
		return VariantSecondary
	}
}
