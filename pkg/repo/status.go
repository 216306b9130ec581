package repo

import (
	"context"
	"fmt"
	"io"
	"sort"

	"gitlet/pkg/core"
	"gitlet/pkg/types"
)

// Status 输出五个区块：分支、待提交、待删除、未暂存的改动、未跟踪文件
// 每个区块内的条目按字典序，区块以一个空行结尾 (空区块也是)
func (r *Repository) Status(ctx context.Context, w io.Writer) error {
	branches, err := r.Refs.BranchNames()
	if err != nil {
		return err
	}
	curBranch, err := r.Refs.CurrentBranch()
	if err != nil {
		return err
	}
	additions, err := r.Stage.Additions()
	if err != nil {
		return err
	}
	removals, err := r.Stage.Removals()
	if err != nil {
		return err
	}
	head, err := r.headCommit(ctx)
	if err != nil {
		return err
	}
	files, err := r.WorkTree.Files()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "=== Branches ===")
	for _, b := range branches {
		if b == curBranch {
			fmt.Fprintln(w, "*"+b)
		} else {
			fmt.Fprintln(w, b)
		}
	}
	fmt.Fprintln(w)

	printSection(w, "Staged Files", additions)
	printSection(w, "Removed Files", removals)

	mods, err := r.unstagedModifications(head, additions, removals, files)
	if err != nil {
		return err
	}
	printSection(w, "Modifications Not Staged For Commit", mods)

	untracked := untrackedFiles(head, toSet(additions), toSet(removals), files)
	printSection(w, "Untracked Files", untracked)
	return nil
}

// unstagedModifications 工作区与暂存区/头提交的对账
// 四条规则的并集，条目带 (modified) / (deleted) 后缀
func (r *Repository) unstagedModifications(head *core.Commit,
	additions, removals, files []string) ([]string, error) {

	inWorkTree := toSet(files)
	addSet := toSet(additions)
	delSet := toSet(removals)

	// 工作区指纹按需计算，一个文件最多算一次
	wtFP := make(map[string]types.Fingerprint)
	fingerprint := func(name string) (types.Fingerprint, error) {
		if fp, ok := wtFP[name]; ok {
			return fp, nil
		}
		fp, err := r.WorkTree.Fingerprint(name)
		if err != nil {
			return "", err
		}
		wtFP[name] = fp
		return fp, nil
	}

	out := make(map[string]struct{})

	for _, name := range additions {
		if _, ok := inWorkTree[name]; !ok {
			out[name+" (deleted)"] = struct{}{}
			continue
		}
		data, err := r.Stage.AdditionBytes(name)
		if err != nil {
			return nil, err
		}
		stagedFP := core.FingerprintBlob(data)
		fp, err := fingerprint(name)
		if err != nil {
			return nil, err
		}
		if fp != stagedFP {
			out[name+" (modified)"] = struct{}{}
		}
	}

	for _, entry := range head.Entries {
		name := entry.Name
		if _, ok := inWorkTree[name]; ok {
			if _, staged := addSet[name]; staged {
				continue
			}
			fp, err := fingerprint(name)
			if err != nil {
				return nil, err
			}
			if fp != entry.Blob {
				out[name+" (modified)"] = struct{}{}
			}
		} else if _, removed := delSet[name]; !removed {
			out[name+" (deleted)"] = struct{}{}
		}
	}

	result := make([]string, 0, len(out))
	for s := range out {
		result = append(result, s)
	}
	sort.Strings(result)
	return result, nil
}

// untrackedFiles 工作区里既不被头提交跟踪也没有暂存的文件，
// 以及标记删除后又重新出现的文件
func untrackedFiles(head *core.Commit, addSet, delSet map[string]struct{},
	files []string) []string {

	var out []string
	for _, name := range files {
		_, staged := addSet[name]
		_, removed := delSet[name]
		if (!head.Tracks(name) && !staged) || removed {
			out = append(out, name)
		}
	}
	return out
}

func printSection(w io.Writer, title string, entries []string) {
	fmt.Fprintf(w, "=== %s ===\n", title)
	for _, e := range entries {
		fmt.Fprintln(w, e)
	}
	fmt.Fprintln(w)
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
