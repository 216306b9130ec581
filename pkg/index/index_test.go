package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIndex(t *testing.T) (*Index, string) {
	stageDir := t.TempDir()
	return New(stageDir), stageDir
}

func TestStageAddition_RoundTrip(t *testing.T) {
	idx, stageDir := setupIndex(t)

	require.NoError(t, idx.StageAddition("a.txt", []byte("hello\n")))

	ok, err := idx.HasAddition("a.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := idx.AdditionBytes("a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello\n"), data)

	// 暂存条目就是 stage 目录里的普通文件
	_, err = os.Stat(filepath.Join(stageDir, "a.txt"))
	assert.NoError(t, err)

	// 覆盖旧条目
	require.NoError(t, idx.StageAddition("a.txt", []byte("v2")))
	data, err = idx.AdditionBytes("a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)

	adds, err := idx.Additions()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, adds, "同名覆盖不产生重复条目")
}

func TestStageRemoval_MarkerFile(t *testing.T) {
	idx, stageDir := setupIndex(t)

	require.NoError(t, idx.StageRemoval("gone.txt"))

	dels, err := idx.Removals()
	require.NoError(t, err)
	assert.Equal(t, []string{"gone.txt"}, dels)

	// 删除标记是带前缀的普通文件
	_, err = os.Stat(filepath.Join(stageDir, "[[del[[gone.txt"))
	assert.NoError(t, err)
}

// 待提交与待删除必须不相交
func TestAdditionsAndRemovalsDisjoint(t *testing.T) {
	idx, _ := setupIndex(t)

	require.NoError(t, idx.StageRemoval("f.txt"))
	require.NoError(t, idx.StageAddition("f.txt", []byte("back")))

	adds, err := idx.Additions()
	require.NoError(t, err)
	dels, err := idx.Removals()
	require.NoError(t, err)
	assert.Equal(t, []string{"f.txt"}, adds)
	assert.Empty(t, dels, "暂存内容后删除标记必须被清掉")

	// 反过来：登记删除后待提交条目被清掉
	require.NoError(t, idx.StageRemoval("f.txt"))
	adds, err = idx.Additions()
	require.NoError(t, err)
	dels, err = idx.Removals()
	require.NoError(t, err)
	assert.Empty(t, adds)
	assert.Equal(t, []string{"f.txt"}, dels)
}

func TestIsEmptyAndClear(t *testing.T) {
	idx, _ := setupIndex(t)

	empty, err := idx.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, idx.StageAddition("x", []byte("1")))
	require.NoError(t, idx.StageRemoval("y"))

	empty, err = idx.IsEmpty()
	require.NoError(t, err)
	assert.False(t, empty)

	require.NoError(t, idx.Clear())
	empty, err = idx.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestUnstageAddition(t *testing.T) {
	idx, _ := setupIndex(t)

	ok, err := idx.UnstageAddition("nope")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, idx.StageAddition("a", []byte("1")))
	ok, err = idx.UnstageAddition("a")
	require.NoError(t, err)
	assert.True(t, ok)

	adds, err := idx.Additions()
	require.NoError(t, err)
	assert.Empty(t, adds)
}
