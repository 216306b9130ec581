package repo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"gitlet/pkg/dag"
	"gitlet/pkg/refs"
	"gitlet/pkg/types"
	"gitlet/pkg/usererr"
)

// Merge 把给定分支三方合并进当前分支
//
// 前置检查按固定顺序：暂存区必须干净，工作区不能有未跟踪文件，
// 给定分支必须存在且不是当前分支。之后按分叉点对每个文件分类，
// 把需要采纳的版本写回工作区并暂存，最后产出一条双亲合并提交。
func (r *Repository) Merge(ctx context.Context, w io.Writer, branch string) error {
	empty, err := r.Stage.IsEmpty()
	if err != nil {
		return err
	}
	if !empty {
		return usererr.New("You have uncommitted changes.")
	}
	if err := r.ensureNoUntracked(ctx, false); err != nil {
		return err
	}
	otherFP, err := r.Refs.HeadOf(branch)
	if errors.Is(err, refs.ErrNoBranch) {
		return usererr.New("A branch with that name does not exist.")
	}
	if err != nil {
		return err
	}
	curBranch, err := r.Refs.CurrentBranch()
	if err != nil {
		return err
	}
	if branch == curBranch {
		return usererr.New("Cannot merge a branch with itself.")
	}
	curFP, err := r.Refs.HeadOf(curBranch)
	if err != nil {
		return err
	}

	splitFP, outcome, err := dag.FindSplitPoint(ctx, r.Store, curFP, otherFP)
	if err != nil {
		return err
	}
	switch outcome {
	case dag.OutcomeSameHead:
		// 两个头是同一个提交，什么都不用做
		return nil
	case dag.OutcomeGivenIsAncestor:
		return usererr.New("Given branch is an ancestor of the current branch.")
	case dag.OutcomeFastForward:
		return r.fastForward(ctx, w, curBranch, otherFP)
	}

	curC, err := r.Store.GetCommit(ctx, curFP)
	if err != nil {
		return err
	}
	othC, err := r.Store.GetCommit(ctx, otherFP)
	if err != nil {
		return err
	}
	splC, err := r.Store.GetCommit(ctx, splitFP)
	if err != nil {
		return err
	}

	conflict, err := r.applyMergeRules(ctx, splC.Tree(), curC.Tree(), othC.Tree())
	if err != nil {
		return err
	}
	if conflict {
		fmt.Fprintln(w, "Encountered a merge conflict.")
	}

	msg := fmt.Sprintf("Merged %s into %s.", branch, curBranch)
	return r.commitInternal(ctx, msg, otherFP)
}

// fastForward 当前头是给定头的祖先：分支指针直接搬过去，工作区照单重建
func (r *Repository) fastForward(ctx context.Context, w io.Writer, curBranch string, otherFP types.Fingerprint) error {
	other, err := r.Store.GetCommit(ctx, otherFP)
	if err != nil {
		return err
	}
	if err := r.exp.RestoreTree(ctx, other, r.WorkTree); err != nil {
		return err
	}
	if err := r.Refs.SetHead(curBranch, otherFP); err != nil {
		return err
	}
	if err := r.Stage.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(w, "Current branch fast-forwarded.")
	return nil
}

// applyMergeRules 对三棵树并集里的每个文件套一遍合并表
func (r *Repository) applyMergeRules(ctx context.Context,
	spl, cur, oth map[string]types.Fingerprint) (bool, error) {

	names := make(map[string]struct{})
	for n := range spl {
		names[n] = struct{}{}
	}
	for n := range cur {
		names[n] = struct{}{}
	}
	for n := range oth {
		names[n] = struct{}{}
	}
	sorted := make([]string, 0, len(names))
	for n := range names {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	conflict := false
	for _, name := range sorted {
		s, sOK := spl[name]
		c, cOK := cur[name]
		o, oOK := oth[name]

		if sOK {
			curSame := cOK && c == s
			othSame := oOK && o == s
			switch {
			case curSame && oOK && o != s:
				// 当前未动、对方改了 -> 采纳对方的版本
				if err := r.adoptOther(ctx, name, o); err != nil {
					return false, err
				}
			case curSame && !oOK:
				// 当前未动、对方删了 -> 删掉并暂存删除
				if err := r.WorkTree.Remove(name); err != nil {
					return false, err
				}
				if err := r.Stage.StageRemoval(name); err != nil {
					return false, err
				}
			case cOK && oOK && c == o:
				// 双方一致 (同改或都没动)
			case !cOK && !oOK:
				// 双方都删
			case othSame:
				// 对方未动，当前的改动 (或删除) 保留
			default:
				// 两边改得不一样，或一边删一边改
				conflict = true
				if err := r.stageConflict(ctx, name, c, cOK, o, oOK); err != nil {
					return false, err
				}
			}
			continue
		}

		// 分叉点没有这个文件
		switch {
		case cOK && !oOK:
			// 仅当前新建，保留
		case !cOK && oOK:
			// 仅对方新建 -> 采纳
			if err := r.adoptOther(ctx, name, o); err != nil {
				return false, err
			}
		case cOK && oOK && c == o:
			// 两边新建且内容相同
		case cOK && oOK:
			// 两边新建且内容不同
			conflict = true
			if err := r.stageConflict(ctx, name, c, cOK, o, oOK); err != nil {
				return false, err
			}
		}
	}
	return conflict, nil
}

// adoptOther 把对方分支的文件版本写进工作区并暂存
func (r *Repository) adoptOther(ctx context.Context, name string, blob types.Fingerprint) error {
	data, err := r.Store.GetBlob(ctx, blob)
	if err != nil {
		return err
	}
	if err := r.WorkTree.Write(name, data); err != nil {
		return err
	}
	return r.Stage.StageAddition(name, data)
}

// stageConflict 写出带冲突标记的文件内容并暂存
// 固定格式：两侧内容原样拼接，缺席的一侧为空
func (r *Repository) stageConflict(ctx context.Context, name string,
	curBlob types.Fingerprint, hasCur bool,
	othBlob types.Fingerprint, hasOth bool) error {

	var curBytes, othBytes []byte
	var err error
	if hasCur {
		if curBytes, err = r.Store.GetBlob(ctx, curBlob); err != nil {
			return err
		}
	}
	if hasOth {
		if othBytes, err = r.Store.GetBlob(ctx, othBlob); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	buf.WriteString("<<<<<<< HEAD\n")
	buf.Write(curBytes)
	buf.WriteString("=======\n")
	buf.Write(othBytes)
	buf.WriteString(">>>>>>>\n")

	if err := r.WorkTree.Write(name, buf.Bytes()); err != nil {
		return err
	}
	return r.Stage.StageAddition(name, buf.Bytes())
}
