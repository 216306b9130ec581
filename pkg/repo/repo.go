// pkg/repo/repo.go
package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gitlet/pkg/config"
	"gitlet/pkg/core"
	"gitlet/pkg/exporter"
	"gitlet/pkg/index"
	"gitlet/pkg/refs"
	"gitlet/pkg/storage"
	"gitlet/pkg/storage/cache"
	"gitlet/pkg/storage/disk"
	"gitlet/pkg/types"
	"gitlet/pkg/usererr"
	"gitlet/pkg/worktree"
)

// Repository 是整个应用程序的依赖容器
// 引用索引和缓存都不是进程全局的：每个操作都通过这个句柄进行，
// 两个仓库 (本地与远端) 可以同时在一个进程里打开。
type Repository struct {
	WorkDir string // 工作目录
	RepoDir string // 元数据目录 (<workDir>/.gitlet)

	Store    storage.Store
	Refs     *refs.Manager
	Stage    *index.Index
	WorkTree *worktree.Scanner

	exp *exporter.Exporter
}

// assemble 组装一个仓库句柄，不做存在性检查
func assemble(workDir string) (*Repository, error) {
	repoDir := filepath.Join(workDir, config.RepoDirName())
	store, err := disk.NewAdapter(repoDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	cached := cache.NewCachedStore(store)

	r := &Repository{
		WorkDir:  workDir,
		RepoDir:  repoDir,
		Store:    cached,
		Refs:     refs.NewManager(repoDir),
		Stage:    index.New(filepath.Join(repoDir, "stage")),
		WorkTree: worktree.NewScanner(workDir, config.IgnoreFileName()),
		exp:      exporter.NewExporter(cached),
	}
	return r, nil
}

// Open 打开一个已初始化的仓库
func Open(workDir string) (*Repository, error) {
	repoDir := filepath.Join(workDir, config.RepoDirName())
	if _, err := os.Stat(repoDir); os.IsNotExist(err) {
		return nil, usererr.New("Not in an initialized Gitlet directory.")
	} else if err != nil {
		return nil, err
	}
	slog.Debug("opening repository", slog.String("dir", repoDir))
	return assemble(workDir)
}

// Init 初始化一个新仓库：建目录结构，做初始提交，建 master 分支
func Init(workDir string) (*Repository, error) {
	repoDir := filepath.Join(workDir, config.RepoDirName())
	if _, err := os.Stat(repoDir); err == nil {
		return nil, usererr.New("A Gitlet version-control system already exists in the current directory.")
	}
	if err := os.MkdirAll(filepath.Join(repoDir, "stage"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create repo directory: %w", err)
	}

	r, err := assemble(workDir)
	if err != nil {
		return nil, err
	}

	initial, err := core.NewInitialCommit()
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	if err := r.Store.PutCommit(ctx, initial); err != nil {
		return nil, fmt.Errorf("failed to store initial commit: %w", err)
	}
	if err := r.Refs.RecordShortID(initial.ID()); err != nil {
		return nil, err
	}
	if err := r.Refs.CreateBranch("master", initial.ID()); err != nil {
		return nil, err
	}
	if err := r.Refs.SetCurrentBranch("master"); err != nil {
		return nil, err
	}
	return r, nil
}

// headCommit 当前分支的头提交
func (r *Repository) headCommit(ctx context.Context) (*core.Commit, error) {
	fp, err := r.Refs.CurrentHead()
	if err != nil {
		return nil, err
	}
	return r.Store.GetCommit(ctx, fp)
}

// resolveCommitID 把用户输入的提交 id 解析成提交对象
// 恰好 8 位时查缩写表；其余长度当完整指纹直接读对象库
func (r *Repository) resolveCommitID(ctx context.Context, id string) (*core.Commit, error) {
	fp := types.Fingerprint(id)
	if len(id) == types.ShortIDLen {
		full, err := r.Refs.ResolveShort(types.HashPrefix(id))
		if errors.Is(err, refs.ErrUnknownID) {
			return nil, usererr.New("No commit with that id exists.")
		}
		if err != nil {
			return nil, err
		}
		fp = full
	}
	c, err := r.Store.GetCommit(ctx, fp)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, usererr.New("No commit with that id exists.")
	}
	return c, err
}

// Branch 创建一个指向当前头提交的新分支，不切换过去
func (r *Repository) Branch(name string) error {
	head, err := r.Refs.CurrentHead()
	if err != nil {
		return err
	}
	err = r.Refs.CreateBranch(name, head)
	if errors.Is(err, refs.ErrBranchExists) {
		return usererr.New("A branch with that name already exists.")
	}
	return err
}

// RemoveBranch 删除分支指针，保留所有提交与 blob
func (r *Repository) RemoveBranch(name string) error {
	cur, err := r.Refs.CurrentBranch()
	if err != nil {
		return err
	}
	if cur == name {
		return usererr.New("Cannot remove the current branch.")
	}
	err = r.Refs.DeleteBranch(name)
	if errors.Is(err, refs.ErrNoBranch) {
		return usererr.New("A branch with that name does not exist.")
	}
	return err
}
