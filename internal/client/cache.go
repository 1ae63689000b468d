package client

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"
)

// 查询缓存标签类型
const (
	TagDepartment = "Department"
	TagIssue      = "Issue"
	TagComplaint  = "Complaint"
)

// ItemTag 单条记录的标签，如 Department:3
func ItemTag(tagType string, id int) string {
	return tagType + ":" + strconv.Itoa(id)
}

type cacheEntry struct {
	data []byte
	tags []string
}

// QueryCache 按请求路径缓存读结果，并按标签失效。
// 失效 "Department" 会同时清除 "Department:<id>" 的条目。
type QueryCache struct {
	mu        sync.Mutex
	entries   map[string]cacheEntry
	listeners map[int]func(tags []string)
	nextID    int
}

// NewQueryCache 创建空缓存
func NewQueryCache() *QueryCache {
	return &QueryCache{
		entries:   make(map[string]cacheEntry),
		listeners: make(map[int]func(tags []string)),
	}
}

// get 命中时将缓存内容解码到 out
func (q *QueryCache) get(key string, out interface{}) bool {
	q.mu.Lock()
	e, ok := q.entries[key]
	q.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(e.data, out) == nil
}

func (q *QueryCache) set(key string, data []byte, tags ...string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries[key] = cacheEntry{data: data, tags: tags}
}

// Has 判断 key 是否已缓存
func (q *QueryCache) Has(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.entries[key]
	return ok
}

// Len 当前缓存条目数
func (q *QueryCache) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Invalidate 清除带有任一标签的条目，并通知订阅者
func (q *QueryCache) Invalidate(tags ...string) {
	if len(tags) == 0 {
		return
	}

	q.mu.Lock()
	for key, e := range q.entries {
		if matchAny(e.tags, tags) {
			delete(q.entries, key)
		}
	}
	listeners := make([]func([]string), 0, len(q.listeners))
	for _, fn := range q.listeners {
		listeners = append(listeners, fn)
	}
	q.mu.Unlock()

	// 回调在锁外执行，允许订阅者直接重新查询
	for _, fn := range listeners {
		fn(tags)
	}
}

// Subscribe 注册失效回调，返回取消函数
func (q *QueryCache) Subscribe(fn func(tags []string)) func() {
	q.mu.Lock()
	id := q.nextID
	q.nextID++
	q.listeners[id] = fn
	q.mu.Unlock()

	return func() {
		q.mu.Lock()
		delete(q.listeners, id)
		q.mu.Unlock()
	}
}

func matchAny(entryTags, invalidated []string) bool {
	for _, et := range entryTags {
		for _, t := range invalidated {
			if et == t || strings.HasPrefix(et, t+":") {
				return true
			}
		}
	}
	return false
}
