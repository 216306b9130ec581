package repo

import (
	"context"

	"gitlet/pkg/usererr"
)

// Add 把一个工作区文件放进暂存区
// 文件当前内容与头提交跟踪的版本一致时，撤销它的一切暂存状态 (加或删)，
// 这次 add 变成 no-op。
func (r *Repository) Add(ctx context.Context, name string) error {
	exists, err := r.WorkTree.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return usererr.New("File does not exist.")
	}

	head, err := r.headCommit(ctx)
	if err != nil {
		return err
	}
	fp, err := r.WorkTree.Fingerprint(name)
	if err != nil {
		return err
	}

	if tracked, ok := head.Blob(name); ok && tracked == fp {
		if _, err := r.Stage.UnstageAddition(name); err != nil {
			return err
		}
		return r.Stage.DropRemoval(name)
	}

	data, err := r.WorkTree.FileBytes(name)
	if err != nil {
		return err
	}
	return r.Stage.StageAddition(name, data)
}

// Remove 撤销暂存，或把被跟踪的文件标记为待删除并从工作区删掉
func (r *Repository) Remove(ctx context.Context, name string) error {
	staged, err := r.Stage.HasAddition(name)
	if err != nil {
		return err
	}
	if staged {
		_, err := r.Stage.UnstageAddition(name)
		return err
	}

	head, err := r.headCommit(ctx)
	if err != nil {
		return err
	}
	if head.Tracks(name) {
		if err := r.Stage.StageRemoval(name); err != nil {
			return err
		}
		// 工作区删除是尽力而为：文件可能已经不在了
		return r.WorkTree.Remove(name)
	}

	return usererr.New("No reason to remove the file.")
}
