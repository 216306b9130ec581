// pkg/remote/remote.go
package remote

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitlet/pkg/config"
	"gitlet/pkg/refs"
	"gitlet/pkg/repo"
	"gitlet/pkg/storage"
	"gitlet/pkg/storage/disk"
	"gitlet/pkg/usererr"
	"gitlet/pkg/worktree"
)

// Descriptor 一个已配置的远端：名字 + 文件系统路径
// 远端就是同一块盘上另一个布局相同的仓库，没有网络传输
type Descriptor struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Manager 管理 远端名 -> 描述符 的映射，落盘为 remoteMap
type Manager struct {
	local *repo.Repository
}

func NewManager(local *repo.Repository) *Manager {
	return &Manager{local: local}
}

func (m *Manager) mapPath() string {
	return filepath.Join(m.local.RepoDir, "remoteMap")
}

// Add 登记一个新远端
func (m *Manager) Add(name, path string) error {
	remotes, err := m.load()
	if err != nil {
		return err
	}
	if _, ok := remotes[name]; ok {
		return usererr.New("A remote with that name already exists.")
	}
	remotes[name] = Descriptor{Name: name, Path: normalizePath(path)}
	return m.save(remotes)
}

// Remove 注销一个远端。对象与分支不受影响。
func (m *Manager) Remove(name string) error {
	remotes, err := m.load()
	if err != nil {
		return err
	}
	if _, ok := remotes[name]; !ok {
		return usererr.New("A remote with that name does not exist.")
	}
	delete(remotes, name)
	return m.save(remotes)
}

// normalizePath 统一分隔符并剥掉末尾的仓库目录名
// 用户可能给 ../peer、..\peer 或 ../peer/.gitlet，落盘的是工作目录路径
func normalizePath(path string) string {
	p := strings.ReplaceAll(path, "\\", "/")
	p = strings.TrimSuffix(p, "/")
	p = strings.TrimSuffix(p, config.RepoDirName())
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		p = "."
	}
	return filepath.FromSlash(p)
}

// peer 一个已打开的对端仓库：对象库 + 引用索引 + 工作目录
type peer struct {
	workDir string
	repoDir string
	store   storage.Store
	refs    *refs.Manager
	wt      *worktree.Scanner
}

// resolve 按名字打开对端仓库
// 远端没配置、或对端路径下没有仓库目录，都按同一个错误报告
func (m *Manager) resolve(name string) (*peer, error) {
	remotes, err := m.load()
	if err != nil {
		return nil, err
	}
	d, ok := remotes[name]
	if !ok {
		return nil, usererr.New("Remote directory not found.")
	}

	workDir := d.Path
	if !filepath.IsAbs(workDir) {
		workDir = filepath.Join(m.local.WorkDir, workDir)
	}
	repoDir := filepath.Join(workDir, config.RepoDirName())
	if _, err := os.Stat(repoDir); err != nil {
		return nil, usererr.New("Remote directory not found.")
	}

	store, err := disk.NewAdapter(repoDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote store: %w", err)
	}
	return &peer{
		workDir: workDir,
		repoDir: repoDir,
		store:   store,
		refs:    refs.NewManager(repoDir),
		wt:      worktree.NewScanner(workDir, config.IgnoreFileName()),
	}, nil
}

func (m *Manager) load() (map[string]Descriptor, error) {
	out := make(map[string]Descriptor)
	data, err := os.ReadFile(m.mapPath())
	if os.IsNotExist(err) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read remoteMap: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("corrupted remoteMap: %w", err)
	}
	return out, nil
}

func (m *Manager) save(remotes map[string]Descriptor) error {
	data, err := json.MarshalIndent(remotes, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.mapPath(), data, 0644)
}
