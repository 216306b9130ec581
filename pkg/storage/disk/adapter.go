package disk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gitlet/pkg/core"
	"gitlet/pkg/storage"
	"gitlet/pkg/types"
)

// Adapter 实现了 storage.Store 接口
// 布局：<repoDir>/blobs/<40-hex> 与 <repoDir>/commits/<40-hex>
// 每个对象一个文件，文件名就是完整指纹，不做子目录分片
type Adapter struct {
	blobDir   string
	commitDir string
}

// NewAdapter 创建一个新的磁盘存储适配器
func NewAdapter(repoDir string) (*Adapter, error) {
	a := &Adapter{
		blobDir:   filepath.Join(repoDir, "blobs"),
		commitDir: filepath.Join(repoDir, "commits"),
	}
	for _, dir := range []string{a.blobDir, a.commitDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create object dir: %w", err)
		}
	}
	return a, nil
}

func (a *Adapter) PutBlob(ctx context.Context, data []byte) (types.Fingerprint, error) {
	fp := core.FingerprintBlob(data)
	return fp, a.writeObject(filepath.Join(a.blobDir, fp.String()), data)
}

func (a *Adapter) GetBlob(ctx context.Context, fp types.Fingerprint) ([]byte, error) {
	return a.readObject(filepath.Join(a.blobDir, fp.String()))
}

func (a *Adapter) HasBlob(ctx context.Context, fp types.Fingerprint) (bool, error) {
	return exists(filepath.Join(a.blobDir, fp.String()))
}

func (a *Adapter) ListBlobs(ctx context.Context) ([]types.Fingerprint, error) {
	return listObjects(a.blobDir)
}

func (a *Adapter) PutCommit(ctx context.Context, c *core.Commit) error {
	return a.PutCommitBytes(ctx, c.ID(), c.Bytes())
}

func (a *Adapter) GetCommit(ctx context.Context, fp types.Fingerprint) (*core.Commit, error) {
	data, err := a.GetCommitBytes(ctx, fp)
	if err != nil {
		return nil, err
	}
	return core.DecodeCommit(data)
}

func (a *Adapter) GetCommitBytes(ctx context.Context, fp types.Fingerprint) ([]byte, error) {
	return a.readObject(filepath.Join(a.commitDir, fp.String()))
}

func (a *Adapter) PutCommitBytes(ctx context.Context, fp types.Fingerprint, data []byte) error {
	return a.writeObject(filepath.Join(a.commitDir, fp.String()), data)
}

func (a *Adapter) HasCommit(ctx context.Context, fp types.Fingerprint) (bool, error) {
	return exists(filepath.Join(a.commitDir, fp.String()))
}

func (a *Adapter) ListCommits(ctx context.Context) ([]types.Fingerprint, error) {
	return listObjects(a.commitDir)
}

// writeObject 原子写入一个对象文件
// 技巧：先写到同目录的临时文件再 Rename，保证要么不存在、要么完整
func (a *Adapter) writeObject(targetPath string, data []byte) error {
	// 检查是否存在 (幂等性)
	if _, err := os.Stat(targetPath); err == nil {
		return nil
	}

	dir := filepath.Dir(targetPath)
	tempFile, err := os.CreateTemp(dir, "temp-*")
	if err != nil {
		return err
	}
	// 如果成功 Rename 了，这个删除会失效，或者无害
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}

	return os.Rename(tempFile.Name(), targetPath)
}

func (a *Adapter) readObject(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// listObjects 枚举目录下的对象文件名。os.ReadDir 已按文件名排序。
func listObjects(dir string) ([]types.Fingerprint, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]types.Fingerprint, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		out = append(out, types.Fingerprint(e.Name()))
	}
	return out, nil
}
