// pkg/index/index.go
package index

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// removalPrefix 删除标记的文件名前缀
// stage/ 目录里名字以它开头的文件是一个删除标记，内容被忽略；
// 其余文件就是待提交的内容本身。
const removalPrefix = "[[del[["

// Index 管理暂存区。暂存区没有独立的索引文件，状态就是 stage/ 目录：
// 待提交内容与删除标记都以普通文件存在，崩溃后重启依然可读。
type Index struct {
	stageDir string
}

// New 绑定 stage 目录。目录由 init 创建，这里不做检查。
func New(stageDir string) *Index {
	return &Index{stageDir: stageDir}
}

func (i *Index) additionPath(name string) string {
	return filepath.Join(i.stageDir, name)
}

func (i *Index) removalPath(name string) string {
	return filepath.Join(i.stageDir, removalPrefix+name)
}

// StageAddition 把一份工作区内容放进待提交集合，覆盖同名旧条目。
// 同名的删除标记一并清掉：同一个文件不允许既待提交又待删除。
func (i *Index) StageAddition(name string, data []byte) error {
	if err := os.WriteFile(i.additionPath(name), data, 0644); err != nil {
		return fmt.Errorf("failed to stage %s: %w", name, err)
	}
	return removeIfExists(i.removalPath(name))
}

// UnstageAddition 撤掉待提交条目。返回是否真的存在过。
func (i *Index) UnstageAddition(name string) (bool, error) {
	err := os.Remove(i.additionPath(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DropRemoval 撤掉删除标记
func (i *Index) DropRemoval(name string) error {
	return removeIfExists(i.removalPath(name))
}

// StageRemoval 登记一个删除标记，同名待提交条目一并清掉
func (i *Index) StageRemoval(name string) error {
	f, err := os.Create(i.removalPath(name))
	if err != nil {
		return fmt.Errorf("failed to stage removal of %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return removeIfExists(i.additionPath(name))
}

// HasAddition 该文件是否在待提交集合里
func (i *Index) HasAddition(name string) (bool, error) {
	_, err := os.Stat(i.additionPath(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AdditionBytes 读出某个待提交条目的内容
func (i *Index) AdditionBytes(name string) ([]byte, error) {
	return os.ReadFile(i.additionPath(name))
}

// Additions 所有待提交文件名，按字典序
func (i *Index) Additions() ([]string, error) {
	adds, _, err := i.scan()
	return adds, err
}

// Removals 所有待删除文件名，按字典序
func (i *Index) Removals() ([]string, error) {
	_, dels, err := i.scan()
	return dels, err
}

// IsEmpty 暂存区是否为空 (既无待提交也无待删除)
func (i *Index) IsEmpty() (bool, error) {
	adds, dels, err := i.scan()
	if err != nil {
		return false, err
	}
	return len(adds) == 0 && len(dels) == 0, nil
}

// Clear 清空暂存区。提交成功后的最后一步。
func (i *Index) Clear() error {
	entries, err := os.ReadDir(i.stageDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.Remove(filepath.Join(i.stageDir, e.Name())); err != nil {
			return fmt.Errorf("failed to clear stage: %w", err)
		}
	}
	return nil
}

// scan 枚举 stage 目录，把条目拆成 (待提交, 待删除) 两组
func (i *Index) scan() (additions []string, removals []string, err error) {
	entries, err := os.ReadDir(i.stageDir)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if rest, ok := strings.CutPrefix(name, removalPrefix); ok && rest != "" {
			removals = append(removals, rest)
		} else {
			additions = append(additions, name)
		}
	}
	// ReadDir 按目录序返回；删除标记带前缀，剥掉后要重排
	sort.Strings(additions)
	sort.Strings(removals)
	return additions, removals, nil
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
