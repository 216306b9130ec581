package repo

import (
	"context"
	"fmt"
	"io"

	"gitlet/pkg/exporter"
	"gitlet/pkg/usererr"
)

// Log 从当前头提交沿第一父链回放到初始提交
// 合并提交的第二父链不展开，与 git log 的默认行为一致
func (r *Repository) Log(ctx context.Context, w io.Writer) error {
	fp, err := r.Refs.CurrentHead()
	if err != nil {
		return err
	}
	for !fp.IsZero() {
		c, err := r.Store.GetCommit(ctx, fp)
		if err != nil {
			return fmt.Errorf("failed to retrieve commit %s: %w", fp, err)
		}
		exporter.PrintCommit(w, fp, c)
		fp = c.Parent
	}
	return nil
}

// GlobalLog 输出对象库里的每一条提交，按指纹字典序
func (r *Repository) GlobalLog(ctx context.Context, w io.Writer) error {
	ids, err := r.Store.ListCommits(ctx)
	if err != nil {
		return err
	}
	for _, fp := range ids {
		c, err := r.Store.GetCommit(ctx, fp)
		if err != nil {
			return err
		}
		exporter.PrintCommit(w, fp, c)
	}
	return nil
}

// Find 输出所有消息完全匹配的提交 id，每行一个，按指纹字典序
func (r *Repository) Find(ctx context.Context, w io.Writer, message string) error {
	ids, err := r.Store.ListCommits(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, fp := range ids {
		c, err := r.Store.GetCommit(ctx, fp)
		if err != nil {
			return err
		}
		if c.Message == message {
			fmt.Fprintln(w, fp)
			found = true
		}
	}
	if !found {
		return usererr.New("Found no commit with that message.")
	}
	return nil
}
