package repo

import (
	"context"
	"fmt"
	"time"

	"gitlet/pkg/core"
	"gitlet/pkg/types"
	"gitlet/pkg/usererr"
)

// Commit 把暂存区物化成一条新提交并推进当前分支头
func (r *Repository) Commit(ctx context.Context, message string) error {
	return r.commitInternal(ctx, message, "")
}

// commitInternal 提交引擎本体。secondParent 非空时产出合并提交。
//
// 落盘顺序是约定的一部分：提交记录先持久化，然后登记缩写 id，
// 然后才推进分支头，最后清空暂存区。中途崩溃最多留下孤儿对象，
// 不会出现指向不存在提交的分支。
func (r *Repository) commitInternal(ctx context.Context, message string, secondParent types.Fingerprint) error {
	empty, err := r.Stage.IsEmpty()
	if err != nil {
		return err
	}
	if empty {
		return usererr.New("No changes added to the commit.")
	}
	if message == "" {
		return usererr.New("Please enter a commit message.")
	}

	curBranch, err := r.Refs.CurrentBranch()
	if err != nil {
		return err
	}
	headFP, err := r.Refs.HeadOf(curBranch)
	if err != nil {
		return err
	}
	head, err := r.Store.GetCommit(ctx, headFP)
	if err != nil {
		return err
	}

	// 新树 = 父提交的树 + 暂存的删除与新增
	tree := head.Tree()
	removals, err := r.Stage.Removals()
	if err != nil {
		return err
	}
	for _, name := range removals {
		delete(tree, name)
	}
	additions, err := r.Stage.Additions()
	if err != nil {
		return err
	}
	for _, name := range additions {
		data, err := r.Stage.AdditionBytes(name)
		if err != nil {
			return err
		}
		fp, err := r.Store.PutBlob(ctx, data)
		if err != nil {
			return fmt.Errorf("failed to store blob for %s: %w", name, err)
		}
		tree[name] = fp
	}

	c, err := core.NewCommit(message, time.Now(), tree, headFP, secondParent)
	if err != nil {
		return err
	}
	if err := r.Store.PutCommit(ctx, c); err != nil {
		return fmt.Errorf("failed to store commit: %w", err)
	}
	if err := r.Refs.RecordShortID(c.ID()); err != nil {
		return err
	}
	if err := r.Refs.SetHead(curBranch, c.ID()); err != nil {
		return err
	}
	return r.Stage.Clear()
}
