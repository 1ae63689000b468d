package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"complaint-desk/config"
)

// Client Redis 客户端封装
// 用于只读接口的结果缓存（按标签失效）与写接口限流
type Client struct {
	rdb    *goredis.Client
	prefix string
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, prefix string, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, prefix: prefix, logger: logger}, nil
}

func (c *Client) key(parts ...string) string {
	k := c.prefix
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

// ── 标签缓存 ──

// GetJSON 读取缓存并反序列化到 dst，未命中返回 false
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.rdb.Get(ctx, c.key("cache", key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 无条件写入缓存，并把 key 记录到每个标签集合中，供 InvalidateTags 批量删除
func (c *Client) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration, tags ...string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		c.queueSet(ctx, pipe, key, data, ttl, tags)
		return nil
	})
	return err
}

// TagVersions 返回各标签当前的失效代数，从未失效过的标签为 0
func (c *Client) TagVersions(ctx context.Context, tags ...string) ([]int64, error) {
	if len(tags) == 0 {
		return []int64{}, nil
	}
	return readVersions(c.rdb.MGet(ctx, c.genKeys(tags)...))
}

// SetJSONIfFresh 仅当各标签的失效代数仍等于 versions 时写入。
// 代数在 WATCH 下比对，期间发生 InvalidateTags 则事务放弃，返回 false
func (c *Client) SetJSONIfFresh(ctx context.Context, key string, v interface{}, ttl time.Duration, versions []int64, tags ...string) (bool, error) {
	if len(versions) != len(tags) {
		return false, fmt.Errorf("versions 数量 %d 与 tags 数量 %d 不一致", len(versions), len(tags))
	}
	if len(tags) == 0 {
		if err := c.SetJSON(ctx, key, v, ttl); err != nil {
			return false, err
		}
		return true, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return false, err
	}

	genKeys := c.genKeys(tags)
	stored := false
	err = c.rdb.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := readVersions(tx.MGet(ctx, genKeys...))
		if err != nil {
			return err
		}
		for i := range current {
			if current[i] != versions[i] {
				return nil
			}
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			c.queueSet(ctx, pipe, key, data, ttl, tags)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, genKeys...)
	if errors.Is(err, goredis.TxFailedErr) {
		return false, nil
	}
	return stored, err
}

// InvalidateTags 递增标签代数并删除挂在标签下的全部缓存条目。
// 先递增代数，使正在读取数据库的请求放弃回写
func (c *Client) InvalidateTags(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		if err := c.rdb.Incr(ctx, c.key("gen", tag)).Err(); err != nil {
			return err
		}
		tagKey := c.key("tag", tag)
		members, err := c.rdb.SMembers(ctx, tagKey).Result()
		if err != nil {
			return err
		}
		keys := append(members, tagKey)
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) queueSet(ctx context.Context, pipe goredis.Pipeliner, key string, data []byte, ttl time.Duration, tags []string) {
	fullKey := c.key("cache", key)
	pipe.Set(ctx, fullKey, data, ttl)
	for _, tag := range tags {
		tagKey := c.key("tag", tag)
		pipe.SAdd(ctx, tagKey, fullKey)
		// 标签集合比条目多保留一个周期，避免集合先于条目过期导致漏删
		pipe.Expire(ctx, tagKey, 2*ttl)
	}
}

func (c *Client) genKeys(tags []string) []string {
	keys := make([]string, len(tags))
	for i, tag := range tags {
		keys[i] = c.key("gen", tag)
	}
	return keys
}

func readVersions(cmd *goredis.SliceCmd) ([]int64, error) {
	vals, err := cmd.Result()
	if err != nil {
		return nil, err
	}
	versions := make([]int64, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("解析标签代数失败: %w", err)
		}
		versions[i] = n
	}
	return versions, nil
}

// ── 限流 ──

// CheckRateLimit 基于有序集合的滑动窗口计数，返回本次请求是否放行
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	fullKey := c.key("ratelimit", key)
	member := strconv.FormatInt(now.UnixNano(), 10)

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, fullKey, "0", strconv.FormatInt(now.Add(-window).UnixNano(), 10))
	pipe.ZAdd(ctx, fullKey, goredis.Z{Score: float64(now.UnixNano()), Member: member})
	card := pipe.ZCard(ctx, fullKey)
	pipe.PExpire(ctx, fullKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return card.Val() <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
