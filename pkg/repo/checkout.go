package repo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gitlet/pkg/core"
	"gitlet/pkg/refs"
	"gitlet/pkg/storage"
	"gitlet/pkg/usererr"
)

const untrackedInTheWay = "There is an untracked file in the way; delete it, or add and commit it first."

// CheckoutFile 把头提交里记录的文件版本写回工作区，不改暂存区
func (r *Repository) CheckoutFile(ctx context.Context, name string) error {
	head, err := r.headCommit(ctx)
	if err != nil {
		return err
	}
	return r.restoreOne(ctx, head, name)
}

// CheckoutFileAt 把指定提交里记录的文件版本写回工作区
func (r *Repository) CheckoutFileAt(ctx context.Context, commitID, name string) error {
	c, err := r.resolveCommitID(ctx, commitID)
	if err != nil {
		return err
	}
	return r.restoreOne(ctx, c, name)
}

func (r *Repository) restoreOne(ctx context.Context, c *core.Commit, name string) error {
	err := r.exp.RestoreFile(ctx, c, name, r.WorkTree)
	if errors.Is(err, storage.ErrNotFound) {
		return usererr.New("File does not exist in that commit.")
	}
	return err
}

// CheckoutBranch 用目标分支头提交的树重建工作目录并切换当前分支
// 目标就是当前分支时只提示，不清暂存区
func (r *Repository) CheckoutBranch(ctx context.Context, w io.Writer, branch string) error {
	targetFP, err := r.Refs.HeadOf(branch)
	if errors.Is(err, refs.ErrNoBranch) {
		return usererr.New("No such branch exists.")
	}
	if err != nil {
		return err
	}
	if err := r.ensureNoUntracked(ctx, false); err != nil {
		return err
	}

	target, err := r.Store.GetCommit(ctx, targetFP)
	if err != nil {
		return err
	}
	if err := r.exp.RestoreTree(ctx, target, r.WorkTree); err != nil {
		return err
	}

	cur, err := r.Refs.CurrentBranch()
	if err != nil {
		return err
	}
	if branch == cur {
		fmt.Fprintln(w, "No need to checkout the current branch")
		return nil
	}
	if err := r.Refs.SetCurrentBranch(branch); err != nil {
		return err
	}
	return r.Stage.Clear()
}

// Reset 用指定提交的树重建工作目录，把当前分支头移过去，清空暂存区
func (r *Repository) Reset(ctx context.Context, commitID string) error {
	// 先解析 id：坏 id 不改动任何状态
	target, err := r.resolveCommitID(ctx, commitID)
	if err != nil {
		return err
	}
	// reset 的未跟踪检查豁免已暂存的文件
	if err := r.ensureNoUntracked(ctx, true); err != nil {
		return err
	}
	if err := r.exp.RestoreTree(ctx, target, r.WorkTree); err != nil {
		return err
	}

	cur, err := r.Refs.CurrentBranch()
	if err != nil {
		return err
	}
	if err := r.Refs.SetHead(cur, target.ID()); err != nil {
		return err
	}
	return r.Stage.Clear()
}

// ensureNoUntracked 工作目录里有不被当前头提交跟踪的文件时中止
// 这是所有整树重建操作共用的防丢数据闸门
func (r *Repository) ensureNoUntracked(ctx context.Context, exemptStaged bool) error {
	head, err := r.headCommit(ctx)
	if err != nil {
		return err
	}
	files, err := r.WorkTree.Files()
	if err != nil {
		return err
	}
	for _, f := range files {
		if head.Tracks(f) {
			continue
		}
		if exemptStaged {
			staged, err := r.Stage.HasAddition(f)
			if err != nil {
				return err
			}
			if staged {
				continue
			}
		}
		return usererr.New(untrackedInTheWay)
	}
	return nil
}
