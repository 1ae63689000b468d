package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// 缓存标签：写操作按资源失效对应标签。
// 投诉的读结果同时挂在 department / issue 标签下，部门或问题类型改名后联表结果随之失效。
const (
	tagDepartment = "department"
	tagIssue      = "issue"
	tagComplaint  = "complaint"
)

// Cache 读缓存接口（pkg/redis.Client 实现）
// 每个标签带一个失效代数，InvalidateTags 会使其递增；
// SetJSONIfFresh 仅在代数与读取前一致时写入，避免把失效前读到的旧数据写回缓存
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	TagVersions(ctx context.Context, tags ...string) ([]int64, error)
	SetJSONIfFresh(ctx context.Context, key string, v interface{}, ttl time.Duration, versions []int64, tags ...string) (bool, error)
	InvalidateTags(ctx context.Context, tags ...string) error
}

type nopCache struct{}

func (nopCache) GetJSON(context.Context, string, interface{}) (bool, error) { return false, nil }
func (nopCache) TagVersions(_ context.Context, tags ...string) ([]int64, error) {
	return make([]int64, len(tags)), nil
}
func (nopCache) SetJSONIfFresh(context.Context, string, interface{}, time.Duration, []int64, ...string) (bool, error) {
	return false, nil
}
func (nopCache) InvalidateTags(context.Context, ...string) error { return nil }

// cacheSupport 各业务 Service 共享的缓存辅助，缓存故障只记日志不影响业务
type cacheSupport struct {
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

func newCacheSupport(cache Cache, ttl time.Duration, logger *zap.Logger) *cacheSupport {
	if cache == nil || ttl <= 0 {
		cache = nopCache{}
	}
	return &cacheSupport{cache: cache, ttl: ttl, logger: logger}
}

func (cs *cacheSupport) invalidate(ctx context.Context, tags ...string) {
	if err := cs.cache.InvalidateTags(ctx, tags...); err != nil {
		cs.logger.Warn("缓存失效失败", zap.Strings("tags", tags), zap.Error(err))
	}
}

// readThrough 先读缓存，未命中时调用 load 并回写。
// load 之前记录标签代数，load 期间若有写操作使标签失效则放弃回写
func readThrough[T any](ctx context.Context, cs *cacheSupport, key string, tags []string, load func() (T, error)) (T, error) {
	var cached T
	hit, err := cs.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		cs.logger.Warn("读取缓存失败", zap.String("key", key), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	versions, verErr := cs.cache.TagVersions(ctx, tags...)
	if verErr != nil {
		cs.logger.Warn("读取缓存代数失败", zap.Strings("tags", tags), zap.Error(verErr))
	}

	v, err := load()
	if err != nil {
		return v, err
	}

	if verErr != nil {
		return v, nil
	}
	stored, err := cs.cache.SetJSONIfFresh(ctx, key, v, cs.ttl, versions, tags...)
	if err != nil {
		cs.logger.Warn("写入缓存失败", zap.String("key", key), zap.Error(err))
	} else if !stored {
		cs.logger.Debug("读取期间缓存已失效，放弃回写", zap.String("key", key))
	}
	return v, nil
}
