package exporter

import (
	"context"
	"fmt"

	"gitlet/pkg/core"
	"gitlet/pkg/storage"
	"gitlet/pkg/worktree"
)

// Exporter 把对象库里的内容物化回工作目录
type Exporter struct {
	store storage.Store
}

func NewExporter(store storage.Store) *Exporter {
	return &Exporter{store: store}
}

// RestoreFile 把提交中记录的某个文件版本写回工作区，覆盖现有内容。
// 文件未被该提交跟踪时返回 storage.ErrNotFound 交由上层翻译。
func (e *Exporter) RestoreFile(ctx context.Context, c *core.Commit, name string, wt *worktree.Scanner) error {
	fp, ok := c.Blob(name)
	if !ok {
		return storage.ErrNotFound
	}
	data, err := e.store.GetBlob(ctx, fp)
	if err != nil {
		return fmt.Errorf("failed to load blob for %s: %w", name, err)
	}
	return wt.Write(name, data)
}

// RestoreTree 用提交的整棵文件树重建工作目录：
// 先删掉枚举可见的所有文件，再写出该提交跟踪的每一个文件。
// checkout/reset 的未跟踪文件检查必须在调用之前完成。
func (e *Exporter) RestoreTree(ctx context.Context, c *core.Commit, wt *worktree.Scanner) error {
	files, err := wt.Files()
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := wt.Remove(f); err != nil {
			return fmt.Errorf("failed to clear %s: %w", f, err)
		}
	}

	for _, entry := range c.Entries {
		data, err := e.store.GetBlob(ctx, entry.Blob)
		if err != nil {
			return fmt.Errorf("failed to load blob for %s: %w", entry.Name, err)
		}
		if err := wt.Write(entry.Name, data); err != nil {
			return err
		}
	}
	return nil
}
