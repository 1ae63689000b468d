package ui

import (
	"context"
	"fmt"

	"complaint-desk/internal/client"
)

// DeleteDialog 删除确认对话框
type DeleteDialog[T any] struct {
	noun     string
	describe func(T) string
	remove   func(ctx context.Context, target T) (string, error)

	target *T
	Error  string
}

// NewDeleteDialog noun 如 "complaint"；describe 返回对象描述，如 "#3"
func NewDeleteDialog[T any](noun string, describe func(T) string, remove func(ctx context.Context, target T) (string, error)) *DeleteDialog[T] {
	return &DeleteDialog[T]{noun: noun, describe: describe, remove: remove}
}

// Open 打开对话框
func (d *DeleteDialog[T]) Open(target T) {
	d.target = &target
	d.Error = ""
}

// IsOpen 对话框是否打开
func (d *DeleteDialog[T]) IsOpen() bool {
	return d.target != nil
}

// Prompt 确认文案
func (d *DeleteDialog[T]) Prompt() string {
	if d.target == nil {
		return ""
	}
	return fmt.Sprintf("Are you sure you want to delete %s %s? This action cannot be undone.", d.noun, d.describe(*d.target))
}

// Cancel 关闭对话框，不执行删除
func (d *DeleteDialog[T]) Cancel() {
	d.target = nil
	d.Error = ""
}

// Confirm 执行删除；成功后关闭，失败时保持打开并记录错误
func (d *DeleteDialog[T]) Confirm(ctx context.Context) (string, error) {
	if d.target == nil {
		return "", fmt.Errorf("no %s selected", d.noun)
	}
	msg, err := d.remove(ctx, *d.target)
	if err != nil {
		d.Error = client.ErrorMessage(err)
		return "", err
	}
	d.target = nil
	return msg, nil
}
