package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gitlet/pkg/dag"
	"gitlet/pkg/refs"
	"gitlet/pkg/storage"
	"gitlet/pkg/types"
	"gitlet/pkg/usererr"
)

// Push 把本地当前分支快进到对端的指定分支上
//
// 对端已有该分支时，它的头必须在本地头的祖先链上，否则要求先 pull；
// 对端没有该分支时直接创建。缺失的提交与 blob 逐个复制过去，最后把
// 对端分支指到本地头，并用头提交的树覆写对端工作目录。
func (m *Manager) Push(ctx context.Context, name, branch string) error {
	empty, err := m.local.Stage.IsEmpty()
	if err != nil {
		return err
	}
	if !empty {
		return usererr.New("You have uncommitted changes.")
	}

	p, err := m.resolve(name)
	if err != nil {
		return err
	}
	localHead, err := m.local.Refs.CurrentHead()
	if err != nil {
		return err
	}

	// targets == nil 表示对端还没有这个分支，全部复制
	var targets map[types.Fingerprint]struct{}
	remoteHead, err := p.refs.HeadOf(branch)
	switch {
	case err == nil:
		if remoteHead == localHead {
			return usererr.New("Remote is already up-to-date. No need to push.")
		}
		targets, err = dag.CollectUntil(ctx, m.local.Store, localHead,
			func(fp types.Fingerprint) (bool, error) { return fp == remoteHead, nil })
		if err != nil {
			return err
		}
		// 走完整条历史都没碰到对端的头，说明两边分叉了
		if _, ok := targets[remoteHead]; !ok {
			return usererr.New("Please pull down remote changes before pushing.")
		}
		delete(targets, remoteHead)
	case errors.Is(err, refs.ErrNoBranch):
		targets = nil
	default:
		return err
	}

	if err := copyObjects(ctx, m.local.Store, p.store, targets); err != nil {
		return err
	}

	if err := p.refs.SetHead(branch, localHead); err != nil {
		return err
	}

	// 对端工作目录同步成头提交的样子 (只覆写跟踪的文件，不清理其余)
	head, err := m.local.Store.GetCommit(ctx, localHead)
	if err != nil {
		return err
	}
	for _, entry := range head.Entries {
		data, err := p.store.GetBlob(ctx, entry.Blob)
		if err != nil {
			return err
		}
		if err := p.wt.Write(entry.Name, data); err != nil {
			return err
		}
	}
	slog.Debug("push complete",
		slog.String("remote", name),
		slog.String("branch", branch),
		slog.String("head", localHead.String()))
	return nil
}

// Fetch 把对端分支的历史取回本地镜像分支 <远端名>/<分支名>
// 从对端头回溯，遇到本地已有的提交停止下降，缺的提交与 blob 复制过来
func (m *Manager) Fetch(ctx context.Context, name, branch string) error {
	p, err := m.resolve(name)
	if err != nil {
		return err
	}
	remoteHead, err := p.refs.HeadOf(branch)
	if errors.Is(err, refs.ErrNoBranch) {
		return usererr.New("That remote does not have that branch.")
	}
	if err != nil {
		return err
	}

	targets, err := dag.CollectUntil(ctx, p.store, remoteHead,
		func(fp types.Fingerprint) (bool, error) {
			return m.local.Store.HasCommit(ctx, fp)
		})
	if err != nil {
		return err
	}

	if err := copyObjects(ctx, p.store, m.local.Store, targets); err != nil {
		return err
	}

	mirror := name + "/" + branch
	if err := m.local.Refs.SetHead(mirror, remoteHead); err != nil {
		return err
	}
	slog.Debug("fetch complete",
		slog.String("mirror", mirror),
		slog.String("head", remoteHead.String()))
	return nil
}

// MirrorBranch pull 时要合并的镜像分支名
func MirrorBranch(name, branch string) string {
	return name + "/" + branch
}

// copyObjects 把 src 里 dst 缺少的对象搬过去
// commits == nil 时复制 src 的全部提交；blob 总是整库补齐
func copyObjects(ctx context.Context, src, dst storage.Store,
	commits map[types.Fingerprint]struct{}) error {

	var list []types.Fingerprint
	if commits == nil {
		all, err := src.ListCommits(ctx)
		if err != nil {
			return err
		}
		list = all
	} else {
		for fp := range commits {
			list = append(list, fp)
		}
	}

	for _, fp := range list {
		ok, err := dst.HasCommit(ctx, fp)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		// 原始字节直接重放，指纹在两边保持一致
		data, err := src.GetCommitBytes(ctx, fp)
		if err != nil {
			return err
		}
		if err := dst.PutCommitBytes(ctx, fp, data); err != nil {
			return fmt.Errorf("failed to copy commit %s: %w", fp, err)
		}
	}

	blobs, err := src.ListBlobs(ctx)
	if err != nil {
		return err
	}
	for _, fp := range blobs {
		ok, err := dst.HasBlob(ctx, fp)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		data, err := src.GetBlob(ctx, fp)
		if err != nil {
			return err
		}
		if _, err := dst.PutBlob(ctx, data); err != nil {
			return fmt.Errorf("failed to copy blob %s: %w", fp, err)
		}
	}
	return nil
}
