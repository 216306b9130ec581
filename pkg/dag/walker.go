package dag

import (
	"context"
	"errors"
	"fmt"

	"gitlet/pkg/core"
	"gitlet/pkg/types"
)

// CommitGetter 供图遍历按指纹取回提交记录
type CommitGetter interface {
	GetCommit(ctx context.Context, fp types.Fingerprint) (*core.Commit, error)
}

// Outcome 两个分支头之间的关系
type Outcome int

const (
	// OutcomeSplit 正常情况：找到了分叉点
	OutcomeSplit Outcome = iota
	// OutcomeSameHead 两个头是同一个提交，合并是 no-op
	OutcomeSameHead
	// OutcomeGivenIsAncestor 给定分支的头是当前头的祖先
	OutcomeGivenIsAncestor
	// OutcomeFastForward 当前头是给定头的祖先，可以快进
	OutcomeFastForward
)

var errNoSplitPoint = errors.New("cannot locate split point")

type frame struct {
	fp    types.Fingerprint
	depth int
}

// FindSplitPoint 在 cur 与 other 之间选取分叉点。
//
// 规则：从 cur 出发沿两条父链做先序深度优先遍历，给每个到达的提交打上
// 深度标签 (cur 为 0，每下降一层减 1)；一个提交被多条路径到达时，后写的
// 标签覆盖先写的。再从 other 出发遍历，凡是带标签的提交即为公共祖先
// 候选，且不再向其祖先下降。分叉点取标签最大 (最接近 0) 的候选；
// 并列时任取其一。
//
// 遍历过程中发现 other 在 cur 的祖先链上、或 cur 在 other 的祖先链上时
// 提前短路，由调用方处理快进或 no-op。
func FindSplitPoint(ctx context.Context, g CommitGetter, cur, other types.Fingerprint) (types.Fingerprint, Outcome, error) {
	if cur == other {
		return "", OutcomeSameHead, nil
	}

	// 第一趟：从 cur 打深度标签
	// 显式栈代替递归，极深的历史不会打爆调用栈。
	// 故意不做已访问判重：覆盖顺序就是标签语义的一部分。
	tags := make(map[types.Fingerprint]int)
	stack := []frame{{fp: cur, depth: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.fp == other {
			return "", OutcomeGivenIsAncestor, nil
		}
		tags[f.fp] = f.depth

		c, err := g.GetCommit(ctx, f.fp)
		if err != nil {
			return "", 0, fmt.Errorf("walk from current head: %w", err)
		}
		// 第二父先入栈、第一父后入栈，于是第一父先出栈，保持与先序遍历一致的覆盖顺序
		if !c.SecondParent.IsZero() {
			stack = append(stack, frame{fp: c.SecondParent, depth: f.depth - 1})
		}
		if !c.Parent.IsZero() {
			stack = append(stack, frame{fp: c.Parent, depth: f.depth - 1})
		}
	}

	// 第二趟：从 other 收集公共祖先候选
	candidates := make(map[types.Fingerprint]int)
	walk := []types.Fingerprint{other}
	for len(walk) > 0 {
		fp := walk[len(walk)-1]
		walk = walk[:len(walk)-1]
		if fp == cur {
			return "", OutcomeFastForward, nil
		}
		if depth, ok := tags[fp]; ok {
			// 候选命中，不再向它的祖先下降
			candidates[fp] = depth
			continue
		}

		c, err := g.GetCommit(ctx, fp)
		if err != nil {
			return "", 0, fmt.Errorf("walk from given head: %w", err)
		}
		if !c.SecondParent.IsZero() {
			walk = append(walk, c.SecondParent)
		}
		if !c.Parent.IsZero() {
			walk = append(walk, c.Parent)
		}
	}

	if len(candidates) == 0 {
		// 两条链总会在初始提交汇合，走到这里说明对象库已经损坏
		return "", 0, errNoSplitPoint
	}

	var split types.Fingerprint
	best := 1 // 所有标签 <= 0
	for fp, depth := range candidates {
		if best > 0 || depth > best {
			split = fp
			best = depth
		}
	}
	return split, OutcomeSplit, nil
}

// CollectUntil 从 head 沿两条父链回溯收集提交指纹。
// 每个到达的提交都进入结果集；stop 返回 true 的提交本身保留在结果里，
// 但不再向它的祖先下降。push/fetch 用它圈出需要跨仓库复制的提交。
func CollectUntil(ctx context.Context, g CommitGetter, head types.Fingerprint,
	stop func(types.Fingerprint) (bool, error)) (map[types.Fingerprint]struct{}, error) {

	targets := make(map[types.Fingerprint]struct{})
	stack := []types.Fingerprint{head}
	for len(stack) > 0 {
		fp := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := targets[fp]; seen {
			continue
		}
		targets[fp] = struct{}{}

		halt, err := stop(fp)
		if err != nil {
			return nil, err
		}
		if halt {
			continue
		}

		c, err := g.GetCommit(ctx, fp)
		if err != nil {
			return nil, fmt.Errorf("walk history of %s: %w", fp, err)
		}
		if !c.Parent.IsZero() {
			stack = append(stack, c.Parent)
		}
		if !c.SecondParent.IsZero() {
			stack = append(stack, c.SecondParent)
		}
	}
	return targets, nil
}

// IsAncestor 判断 ancestor 是否在 head 的祖先链上 (含 head 本身)
func IsAncestor(ctx context.Context, g CommitGetter, head, ancestor types.Fingerprint) (bool, error) {
	found := false
	_, err := CollectUntil(ctx, g, head, func(fp types.Fingerprint) (bool, error) {
		if fp == ancestor {
			found = true
		}
		return found, nil
	})
	return found, err
}
