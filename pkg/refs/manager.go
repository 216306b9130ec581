package refs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gitlet/pkg/types"
)

var (
	ErrNoBranch     = errors.New("branch not found")
	ErrBranchExists = errors.New("branch already exists")
	ErrUnknownID    = errors.New("unknown abbreviated id")
)

// Manager 负责管理引用：分支 -> 头提交 的映射、当前分支名，
// 以及 8 位缩写 id -> 完整指纹 的查找表。
// 三者分别落盘为 headMap、currentBranch、shortCommitIdMap。
type Manager struct {
	repoDir string
}

func NewManager(repoDir string) *Manager {
	return &Manager{repoDir: repoDir}
}

func (m *Manager) headMapPath() string  { return filepath.Join(m.repoDir, "headMap") }
func (m *Manager) currentPath() string  { return filepath.Join(m.repoDir, "currentBranch") }
func (m *Manager) shortMapPath() string { return filepath.Join(m.repoDir, "shortCommitIdMap") }

// Branches 读取 分支名 -> 头指纹 的完整映射
func (m *Manager) Branches() (map[string]types.Fingerprint, error) {
	return readStringMap(m.headMapPath())
}

// BranchNames 返回所有分支名，按字典序
func (m *Manager) BranchNames() ([]string, error) {
	branches, err := m.Branches()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(branches))
	for n := range branches {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// HeadOf 读取某个分支的头提交指纹
func (m *Manager) HeadOf(branch string) (types.Fingerprint, error) {
	branches, err := m.Branches()
	if err != nil {
		return "", err
	}
	fp, ok := branches[branch]
	if !ok {
		return "", ErrNoBranch
	}
	return fp, nil
}

// SetHead 移动分支头指针。分支不存在时创建 (fetch 的镜像分支依赖这一点)。
func (m *Manager) SetHead(branch string, fp types.Fingerprint) error {
	branches, err := m.Branches()
	if err != nil {
		return err
	}
	branches[branch] = fp
	return writeStringMap(m.headMapPath(), branches)
}

// CreateBranch 创建新分支。已存在则返回 ErrBranchExists。
func (m *Manager) CreateBranch(branch string, fp types.Fingerprint) error {
	branches, err := m.Branches()
	if err != nil {
		return err
	}
	if _, ok := branches[branch]; ok {
		return ErrBranchExists
	}
	branches[branch] = fp
	return writeStringMap(m.headMapPath(), branches)
}

// DeleteBranch 删除分支指针。提交和 blob 全部保留。
func (m *Manager) DeleteBranch(branch string) error {
	branches, err := m.Branches()
	if err != nil {
		return err
	}
	if _, ok := branches[branch]; !ok {
		return ErrNoBranch
	}
	delete(branches, branch)
	return writeStringMap(m.headMapPath(), branches)
}

// CurrentBranch 读取当前分支名
func (m *Manager) CurrentBranch() (string, error) {
	data, err := os.ReadFile(m.currentPath())
	if err != nil {
		return "", fmt.Errorf("failed to read current branch: %w", err)
	}
	// 清理换行符 (手工编辑时可能会自动加 \n)
	return strings.TrimSpace(string(data)), nil
}

// SetCurrentBranch 切换当前分支
func (m *Manager) SetCurrentBranch(branch string) error {
	return os.WriteFile(m.currentPath(), []byte(branch), 0644)
}

// CurrentHead 当前分支的头提交指纹
func (m *Manager) CurrentHead() (types.Fingerprint, error) {
	cur, err := m.CurrentBranch()
	if err != nil {
		return "", err
	}
	return m.HeadOf(cur)
}

// RecordShortID 把一条新提交登记进缩写 id 查找表
// 本仓库做出的每一条提交都在表里，8 位前缀可以还原出完整指纹
func (m *Manager) RecordShortID(fp types.Fingerprint) error {
	table, err := readStringMap(m.shortMapPath())
	if err != nil {
		return err
	}
	table[string(fp.Short())] = fp
	return writeStringMap(m.shortMapPath(), table)
}

// ResolveShort 按 8 位前缀查完整指纹
func (m *Manager) ResolveShort(prefix types.HashPrefix) (types.Fingerprint, error) {
	table, err := readStringMap(m.shortMapPath())
	if err != nil {
		return "", err
	}
	fp, ok := table[prefix.String()]
	if !ok {
		return "", ErrUnknownID
	}
	return fp, nil
}

// --- 序列化辅助 ---

// readStringMap 读取一个 JSON 映射文件。文件不存在视为空映射。
func readStringMap(path string) (map[string]types.Fingerprint, error) {
	out := make(map[string]types.Fingerprint)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("corrupted %s: %w", filepath.Base(path), err)
	}
	return out, nil
}

// writeStringMap 持久化映射。格式化输出 (Indented)，方便排查。
func writeStringMap(path string, m map[string]types.Fingerprint) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
