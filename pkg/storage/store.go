package storage

import (
	"context"
	"errors"

	"gitlet/pkg/core"
	"gitlet/pkg/types"
)

var (
	ErrNotFound = errors.New("object not found")
)

// Store defines the interface for an object-store backend.
// 对象库只增不删：blob 与提交文件一旦写入就不会被改写。
type Store interface {
	// PutBlob 持久化一段文件内容，返回其指纹。幂等：已存在则跳过。
	PutBlob(ctx context.Context, data []byte) (types.Fingerprint, error)

	// GetBlob 按指纹读取原始字节
	GetBlob(ctx context.Context, fp types.Fingerprint) ([]byte, error)

	// HasBlob 检查 blob 是否存在 (用于跨仓库去重复制)
	HasBlob(ctx context.Context, fp types.Fingerprint) (bool, error)

	// ListBlobs 返回所有 blob 指纹，按字典序
	ListBlobs(ctx context.Context) ([]types.Fingerprint, error)

	// PutCommit 持久化一个已密封的提交对象。幂等。
	PutCommit(ctx context.Context, c *core.Commit) error

	// GetCommit 按完整指纹读取并解码一条提交记录
	GetCommit(ctx context.Context, fp types.Fingerprint) (*core.Commit, error)

	// GetCommitBytes 返回提交记录的原始存储字节 (跨仓库复制用，不触发解码)
	GetCommitBytes(ctx context.Context, fp types.Fingerprint) ([]byte, error)

	// PutCommitBytes 以原始字节写入一条提交记录 (从对端仓库复制而来)
	PutCommitBytes(ctx context.Context, fp types.Fingerprint, data []byte) error

	// HasCommit 检查提交是否存在
	HasCommit(ctx context.Context, fp types.Fingerprint) (bool, error)

	// ListCommits 返回所有提交指纹，按字典序
	ListCommits(ctx context.Context) ([]types.Fingerprint, error)
}
