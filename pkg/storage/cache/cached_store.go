package cache

import (
	"context"

	"gitlet/pkg/core"
	"gitlet/pkg/storage"
	"gitlet/pkg/types"

	gocache "github.com/patrickmn/go-cache"
)

// CachedStore 是一个装饰器，为底层的 storage.Store 添加进程内提交缓存
// 只缓存解码后的提交对象：提交不可变，命中后可以无条件复用；
// blob 不缓存，工作区重建是流式一次性读取。
type CachedStore struct {
	storage.Store                // 被装饰的底层存储
	commits       *gocache.Cache // hash -> *core.Commit
}

// NewCachedStore 包装一个底层存储
// 提交对象永不过期：单条命令的生命周期很短，且记录不可变
func NewCachedStore(backend storage.Store) *CachedStore {
	return &CachedStore{
		Store:   backend,
		commits: gocache.New(gocache.NoExpiration, 0),
	}
}

// GetCommit 优先查缓存，未命中则穿透并回填
func (s *CachedStore) GetCommit(ctx context.Context, fp types.Fingerprint) (*core.Commit, error) {
	if v, ok := s.commits.Get(fp.String()); ok {
		return v.(*core.Commit), nil
	}

	c, err := s.Store.GetCommit(ctx, fp)
	if err != nil {
		return nil, err
	}
	s.commits.Set(fp.String(), c, gocache.NoExpiration)
	return c, nil
}

// PutCommit 写穿：先落盘，成功后立即进入缓存
func (s *CachedStore) PutCommit(ctx context.Context, c *core.Commit) error {
	if err := s.Store.PutCommit(ctx, c); err != nil {
		return err
	}
	s.commits.Set(c.ID().String(), c, gocache.NoExpiration)
	return nil
}
