package repo

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutFile_FromHead(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	addAndCommit(t, r, "a.txt", "v1", "a")

	writeWorkFile(t, r, "a.txt", "dirty")
	require.NoError(t, r.CheckoutFile(ctx, "a.txt"))

	data, err := r.WorkTree.FileBytes("a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), data)

	// 不改暂存区
	empty, err := r.Stage.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestCheckoutFile_NotInCommit(t *testing.T) {
	r := setupRepo(t)
	err := r.CheckoutFile(context.Background(), "ghost.txt")
	assert.EqualError(t, err, "File does not exist in that commit.")
}

func TestCheckoutFileAt_OldVersionAndBadID(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	addAndCommit(t, r, "a.txt", "v1", "first")
	oldHead, err := r.Refs.CurrentHead()
	require.NoError(t, err)
	addAndCommit(t, r, "a.txt", "v2", "second")

	// 用 8 位缩写取回旧版本
	require.NoError(t, r.CheckoutFileAt(ctx, string(oldHead[:8]), "a.txt"))
	data, err := r.WorkTree.FileBytes("a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), data)

	// 不存在的 id：不动任何状态
	err = r.CheckoutFileAt(ctx, "0000000000000000000000000000000000000000", "a.txt")
	assert.EqualError(t, err, "No commit with that id exists.")
	data, err = r.WorkTree.FileBytes("a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), data, "坏 id 之后工作区保持原样")
}

func TestCheckoutBranch_SwitchesTreeAndBranch(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	var out bytes.Buffer

	addAndCommit(t, r, "common.txt", "base", "base")
	require.NoError(t, r.Branch("other"))
	addAndCommit(t, r, "master-only.txt", "m", "on master")

	require.NoError(t, r.CheckoutBranch(ctx, &out, "other"))

	cur, err := r.Refs.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "other", cur)

	files, err := r.WorkTree.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{"common.txt"}, files, "目标分支不跟踪的文件被清掉")
}

func TestCheckoutBranch_Errors(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	var out bytes.Buffer

	assert.EqualError(t, r.CheckoutBranch(ctx, &out, "ghost"), "No such branch exists.")

	// 未跟踪文件挡路
	require.NoError(t, r.Branch("other"))
	writeWorkFile(t, r, "stray.txt", "s")
	assert.EqualError(t, r.CheckoutBranch(ctx, &out, "other"),
		"There is an untracked file in the way; delete it, or add and commit it first.")
}

func TestCheckoutBranch_Current(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	var out bytes.Buffer

	// 暂存点东西，确认不被清掉
	writeWorkFile(t, r, "s.txt", "x")
	require.NoError(t, r.Add(ctx, "s.txt"))

	// s.txt 已暂存但未被头提交跟踪 -> 挡路；先提交掉再试
	require.NoError(t, r.Commit(ctx, "s"))
	writeWorkFile(t, r, "s.txt", "y")
	require.NoError(t, r.Add(ctx, "s.txt"))

	require.NoError(t, r.CheckoutBranch(ctx, &out, "master"))
	assert.Equal(t, "No need to checkout the current branch\n", out.String())

	empty, err := r.Stage.IsEmpty()
	require.NoError(t, err)
	assert.False(t, empty, "检出当前分支不清暂存区")
}

// 往返律：checkout 到别的分支再 reset 回旧头，跟踪内容复原
func TestCheckoutThenResetRoundTrip(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	var out bytes.Buffer

	addAndCommit(t, r, "a.txt", "master-v", "on master")
	priorHead, err := r.Refs.CurrentHead()
	require.NoError(t, err)

	require.NoError(t, r.Branch("other"))
	require.NoError(t, r.CheckoutBranch(ctx, &out, "other"))
	addAndCommit(t, r, "a.txt", "other-v", "on other")

	require.NoError(t, r.Reset(ctx, priorHead.String()))

	data, err := r.WorkTree.FileBytes("a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("master-v"), data)

	// reset 把当前分支 (other) 的头移到了目标提交
	head, err := r.Refs.HeadOf("other")
	require.NoError(t, err)
	assert.Equal(t, priorHead, head)

	empty, err := r.Stage.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty, "reset 清空暂存区")
}

func TestReset_BadIDLeavesStateUntouched(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	addAndCommit(t, r, "a.txt", "v1", "a")
	head, err := r.Refs.CurrentHead()
	require.NoError(t, err)

	err = r.Reset(ctx, "deadbeef")
	assert.EqualError(t, err, "No commit with that id exists.")

	// 工作区和分支头都没动
	data, err := r.WorkTree.FileBytes("a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), data)
	now, err := r.Refs.CurrentHead()
	require.NoError(t, err)
	assert.Equal(t, head, now)
}

func TestReset_UntrackedGuardExemptsStaged(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	addAndCommit(t, r, "a.txt", "v1", "a")
	head, err := r.Refs.CurrentHead()
	require.NoError(t, err)

	// 已暂存的新文件不挡 reset 的路
	writeWorkFile(t, r, "staged.txt", "s")
	require.NoError(t, r.Add(ctx, "staged.txt"))
	require.NoError(t, r.Reset(ctx, head.String()))

	// 真正的未跟踪文件仍然挡路
	writeWorkFile(t, r, "stray.txt", "s")
	err = r.Reset(ctx, head.String())
	assert.EqualError(t, err,
		"There is an untracked file in the way; delete it, or add and commit it first.")
}
