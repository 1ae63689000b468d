package ui

import (
	"context"
	"fmt"
	"sync"

	"complaint-desk/internal/client"
)

// PageState 列表页加载状态
type PageState int

const (
	StateLoading PageState = iota
	StateError
	StateReady
)

// Page 列表页状态：加载中 / 加载失败（可重试）/ 就绪
type Page[T any] struct {
	noun string
	load func(ctx context.Context) ([]T, error)

	mu    sync.Mutex
	state PageState
	rows  []T
	err   error
}

// NewPage noun 为单数名词，如 "complaint"
func NewPage[T any](noun string, load func(ctx context.Context) ([]T, error)) *Page[T] {
	return &Page[T]{noun: noun, load: load, state: StateLoading}
}

// Load 拉取数据并更新状态
func (p *Page[T]) Load(ctx context.Context) {
	p.mu.Lock()
	p.state = StateLoading
	p.mu.Unlock()

	rows, err := p.load(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = StateError
		p.err = err
		return
	}
	p.state = StateReady
	p.rows = rows
	p.err = nil
}

// Retry 加载失败后重试
func (p *Page[T]) Retry(ctx context.Context) {
	p.Load(ctx)
}

// Watch 订阅缓存失效，任一 tags 失效时重新加载；返回取消函数
func (p *Page[T]) Watch(ctx context.Context, q *client.QueryCache, tags ...string) func() {
	return q.Subscribe(func(invalidated []string) {
		for _, t := range invalidated {
			for _, want := range tags {
				if t == want {
					p.Load(ctx)
					return
				}
			}
		}
	})
}

// State 当前状态
func (p *Page[T]) State() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Rows 就绪时的数据
func (p *Page[T]) Rows() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rows
}

// Err 加载失败原因
func (p *Page[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// IsEmpty 就绪且无数据
func (p *Page[T]) IsEmpty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == StateReady && len(p.rows) == 0
}

// CountLabel 如 "1 complaint found"、"2 complaints found"
func (p *Page[T]) CountLabel() string {
	n := len(p.Rows())
	if n == 1 {
		return fmt.Sprintf("1 %s found", p.noun)
	}
	return fmt.Sprintf("%d %ss found", n, p.noun)
}

// ErrorText 加载失败时的提示
func (p *Page[T]) ErrorText() string {
	return fmt.Sprintf("Failed to load %ss", p.noun)
}

// EmptyText 无数据时的提示
func (p *Page[T]) EmptyText() string {
	return fmt.Sprintf("No %ss found", p.noun)
}
