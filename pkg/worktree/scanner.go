package worktree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gitlet/pkg/core"
	"gitlet/pkg/types"

	gitignore "github.com/sabhiram/go-gitignore"
)

// Scanner 枚举工作目录里的普通文件，并提供读写与指纹计算。
// 整个系统只跟踪工作目录顶层的普通文件：子目录 (包括仓库目录本身)
// 不会被列出，符号链接与文件模式不在关注范围内。
type Scanner struct {
	workDir string
	ignorer *gitignore.GitIgnore
}

// NewScanner 绑定工作目录
// ignoreFile: 可选的忽略文件名 (如 .gitletignore)；存在则编译其规则，
// 匹配的文件在任何工作区枚举中都不可见 (status、未跟踪检查、checkout 清理)。
func NewScanner(workDir, ignoreFile string) *Scanner {
	s := &Scanner{workDir: workDir}
	if ignoreFile == "" {
		return s
	}
	path := filepath.Join(workDir, ignoreFile)
	if _, err := os.Stat(path); err == nil {
		// 编译失败按没有忽略规则处理，不能因为一个坏规则文件拒绝所有命令
		if ign, err := gitignore.CompileIgnoreFile(path); err == nil {
			s.ignorer = ign
		}
	}
	return s
}

// Files 工作目录顶层的普通文件名，按字典序，忽略规则已应用
func (s *Scanner) Files() ([]string, error) {
	entries, err := os.ReadDir(s.workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan working dir: %w", err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if s.ignorer != nil && s.ignorer.MatchesPath(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}

// Exists 该文件是否出现在工作目录枚举中
func (s *Scanner) Exists(name string) (bool, error) {
	files, err := s.Files()
	if err != nil {
		return false, err
	}
	for _, f := range files {
		if f == name {
			return true, nil
		}
	}
	return false, nil
}

// FileBytes 读取工作区文件内容
func (s *Scanner) FileBytes(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.workDir, name))
}

// Fingerprint 工作区文件当前内容的指纹
func (s *Scanner) Fingerprint(name string) (types.Fingerprint, error) {
	data, err := s.FileBytes(name)
	if err != nil {
		return "", err
	}
	return core.FingerprintBlob(data), nil
}

// Write 覆盖写一个工作区文件
func (s *Scanner) Write(name string, data []byte) error {
	return os.WriteFile(filepath.Join(s.workDir, name), data, 0644)
}

// Remove 删除一个工作区文件。尽力而为：不存在不算错。
func (s *Scanner) Remove(name string) error {
	err := os.Remove(filepath.Join(s.workDir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
