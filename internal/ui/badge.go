package ui

import "complaint-desk/internal/model"

// Badge 状态徽标
type Badge struct {
	Text    string
	Variant string
}

// StatusBadge 按状态取徽标样式
func StatusBadge(status string) Badge {
	return Badge{Text: status, Variant: model.StatusVariant(status)}
}

// String 终端展示，如 "[closed]"、"(resolved)"
func (b Badge) String() string {
	switch b.Variant {
	case model.VariantDefault:
		return "*" + b.Text + "*"
	case model.VariantOutline:
		return "(" + b.Text + ")"
	case model.VariantDestructive:
		return "[" + b.Text + "]"
	default:
		return b.Text
	}
}
