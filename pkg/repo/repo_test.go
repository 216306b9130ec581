package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gitlet/pkg/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRepo 在临时目录里初始化一个真实仓库
func setupRepo(t *testing.T) *Repository {
	t.Helper()
	r, err := Init(t.TempDir())
	require.NoError(t, err)
	return r
}

func writeWorkFile(t *testing.T, r *Repository, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(r.WorkDir, name), []byte(content), 0644))
}

// addAndCommit 常用的捷径：写文件 -> add -> commit
func addAndCommit(t *testing.T, r *Repository, name, content, msg string) {
	t.Helper()
	ctx := context.Background()
	writeWorkFile(t, r, name, content)
	require.NoError(t, r.Add(ctx, name))
	require.NoError(t, r.Commit(ctx, msg))
}

func TestInit_CreatesInitialCommitAndMaster(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	cur, err := r.Refs.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "master", cur)

	head, err := r.headCommit(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.InitialMessage, head.Message)
	assert.Equal(t, int64(0), head.Timestamp)
	assert.Empty(t, head.Entries)
	assert.True(t, head.Parent.IsZero())

	// 初始提交也登记进缩写表
	short, err := r.Refs.ResolveShort(head.ID().Short())
	require.NoError(t, err)
	assert.Equal(t, head.ID(), short)

	// 布局检查：对象目录与暂存目录都在
	for _, sub := range []string{"commits", "blobs", "stage"} {
		_, err := os.Stat(filepath.Join(r.RepoDir, sub))
		assert.NoError(t, err, sub)
	}
}

func TestInit_SecondInitFails(t *testing.T) {
	r := setupRepo(t)
	_, err := Init(r.WorkDir)
	assert.EqualError(t, err, "A Gitlet version-control system already exists in the current directory.")
}

func TestOpen_OutsideRepository(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.EqualError(t, err, "Not in an initialized Gitlet directory.")
}

func TestAdd_MissingFile(t *testing.T) {
	r := setupRepo(t)
	err := r.Add(context.Background(), "ghost.txt")
	assert.EqualError(t, err, "File does not exist.")
}

// add 幂等律：内容不变时加两次与加一次等价
func TestAdd_Idempotent(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	writeWorkFile(t, r, "a.txt", "hello\n")

	require.NoError(t, r.Add(ctx, "a.txt"))
	require.NoError(t, r.Add(ctx, "a.txt"))

	adds, err := r.Stage.Additions()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, adds)
}

// add 抵消律：工作区内容与头提交一致时，add 清掉一切暂存状态
func TestAdd_MatchingTrackedVersionCancels(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	addAndCommit(t, r, "a.txt", "hello\n", "a")

	// 改了又改回去
	writeWorkFile(t, r, "a.txt", "changed")
	require.NoError(t, r.Add(ctx, "a.txt"))
	writeWorkFile(t, r, "a.txt", "hello\n")
	require.NoError(t, r.Add(ctx, "a.txt"))

	empty, err := r.Stage.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)

	// 标记删除后原样重建再 add，同样一笔勾销
	require.NoError(t, r.Remove(ctx, "a.txt"))
	writeWorkFile(t, r, "a.txt", "hello\n")
	require.NoError(t, r.Add(ctx, "a.txt"))
	empty, err = r.Stage.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestCommit_EmptyStage(t *testing.T) {
	r := setupRepo(t)
	err := r.Commit(context.Background(), "nothing")
	assert.EqualError(t, err, "No changes added to the commit.")
}

func TestCommit_EmptyMessage(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	writeWorkFile(t, r, "a.txt", "x")
	require.NoError(t, r.Add(ctx, "a.txt"))

	err := r.Commit(ctx, "")
	assert.EqualError(t, err, "Please enter a commit message.")
}

func TestCommit_AdvancesHeadAndClearsStage(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	initialFP, err := r.Refs.CurrentHead()
	require.NoError(t, err)

	addAndCommit(t, r, "a.txt", "hello\n", "a")

	head, err := r.headCommit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", head.Message)
	assert.Equal(t, initialFP, head.Parent)
	assert.True(t, head.Tracks("a.txt"))

	// 提交律：提交之后暂存区为空
	empty, err := r.Stage.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)

	// blob 落盘且树指向它
	blob, _ := head.Blob("a.txt")
	data, err := r.Store.GetBlob(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello\n"), data)
}

func TestRemove_NoReason(t *testing.T) {
	r := setupRepo(t)
	writeWorkFile(t, r, "free.txt", "x")
	err := r.Remove(context.Background(), "free.txt")
	assert.EqualError(t, err, "No reason to remove the file.")
}

func TestRemove_TrackedFileThenCommit(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	addAndCommit(t, r, "a.txt", "hello\n", "a")

	require.NoError(t, r.Remove(ctx, "a.txt"))

	// 工作区文件被删掉，删除进入暂存
	_, err := os.Stat(filepath.Join(r.WorkDir, "a.txt"))
	assert.True(t, os.IsNotExist(err))
	dels, err := r.Stage.Removals()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, dels)

	// 提交后树为空
	require.NoError(t, r.Commit(ctx, "b"))
	head, err := r.headCommit(ctx)
	require.NoError(t, err)
	assert.Empty(t, head.Entries)
}

func TestRemove_UnstagesAddition(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	writeWorkFile(t, r, "a.txt", "x")
	require.NoError(t, r.Add(ctx, "a.txt"))

	require.NoError(t, r.Remove(ctx, "a.txt"))

	empty, err := r.Stage.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty, "rm 对已暂存的新文件只撤销暂存")
	// 文件本身留在工作区
	_, err = os.Stat(filepath.Join(r.WorkDir, "a.txt"))
	assert.NoError(t, err)
}

func TestBranch_CreateAndDuplicate(t *testing.T) {
	r := setupRepo(t)
	require.NoError(t, r.Branch("other"))
	assert.EqualError(t, r.Branch("other"), "A branch with that name already exists.")

	head, err := r.Refs.CurrentHead()
	require.NoError(t, err)
	otherHead, err := r.Refs.HeadOf("other")
	require.NoError(t, err)
	assert.Equal(t, head, otherHead, "新分支指向当前头提交")
}

func TestRemoveBranch(t *testing.T) {
	r := setupRepo(t)
	require.NoError(t, r.Branch("other"))

	assert.EqualError(t, r.RemoveBranch("master"), "Cannot remove the current branch.")
	assert.EqualError(t, r.RemoveBranch("ghost"), "A branch with that name does not exist.")
	require.NoError(t, r.RemoveBranch("other"))
}

func TestResolveCommitID_ShortAndBad(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	addAndCommit(t, r, "a.txt", "x", "a")

	headFP, err := r.Refs.CurrentHead()
	require.NoError(t, err)

	// 8 位缩写
	c, err := r.resolveCommitID(ctx, string(headFP[:8]))
	require.NoError(t, err)
	assert.Equal(t, headFP, c.ID())

	// 完整指纹
	c, err = r.resolveCommitID(ctx, headFP.String())
	require.NoError(t, err)
	assert.Equal(t, headFP, c.ID())

	// 不存在的 id
	_, err = r.resolveCommitID(ctx, "0000000000000000000000000000000000000000")
	assert.EqualError(t, err, "No commit with that id exists.")
	_, err = r.resolveCommitID(ctx, "00000000")
	assert.EqualError(t, err, "No commit with that id exists.")
}
