package core

import (
	"fmt"
	"sort"
	"time"

	"gitlet/pkg/types"
)

// InitialMessage 初始提交的固定消息
const InitialMessage = "initial commit"

// TreeEntry 提交文件树中的一项：文件名 -> blob 指纹
// 序列化时条目必须按文件名字典序排列，编码才是规范的
type TreeEntry struct {
	Name string            `cbor:"n"`
	Blob types.Fingerprint `cbor:"b"`
}

// Commit 一条不可变的版本快照
// 父提交只通过指纹引用，绝不持有内存指针 (缓存层自行处理)
type Commit struct {
	hash     types.Fingerprint `cbor:"-"`
	rawBytes []byte            `cbor:"-"`

	Message   string      `cbor:"m"`
	Timestamp int64       `cbor:"ts"` // Unix 秒
	Entries   []TreeEntry `cbor:"tr"`

	Parent       types.Fingerprint `cbor:"p,omitempty"`
	SecondParent types.Fingerprint `cbor:"p2,omitempty"`
}

// NewCommit 构造并密封一个提交对象
// tree 在此处拷贝并排序，调用方之后改动 map 不影响已密封的记录
func NewCommit(message string, at time.Time, tree map[string]types.Fingerprint,
	parent, secondParent types.Fingerprint) (*Commit, error) {

	names := make([]string, 0, len(tree))
	for n := range tree {
		names = append(names, n)
	}
	sort.Strings(names)

	entries := make([]TreeEntry, 0, len(tree))
	for _, n := range names {
		entries = append(entries, TreeEntry{Name: n, Blob: tree[n]})
	}

	c := &Commit{
		Message:      message,
		Timestamp:    at.Unix(),
		Entries:      entries,
		Parent:       parent,
		SecondParent: secondParent,
	}

	h, b, err := CalculateHash(c)
	if err != nil {
		return nil, err
	}
	c.hash = h
	c.rawBytes = b
	return c, nil
}

// NewInitialCommit 构造初始提交：epoch 时间戳、空树、无父提交
func NewInitialCommit() (*Commit, error) {
	return NewCommit(InitialMessage, time.Unix(0, 0), nil, "", "")
}

// DecodeCommit 从磁盘字节还原提交对象
// 指纹直接对存储字节重新计算，天然校验了记录未被改写
func DecodeCommit(data []byte) (*Commit, error) {
	var c Commit
	if err := dm.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("corrupted commit record: %w", err)
	}
	c.hash = FingerprintBlob(data)
	c.rawBytes = data
	return &c, nil
}

// ID 返回提交的指纹
func (c *Commit) ID() types.Fingerprint { return c.hash }

// Bytes 返回规范序列化数据 (用于存储和跨仓库复制)
func (c *Commit) Bytes() []byte { return c.rawBytes }

// IsMerge 是否为双亲提交
func (c *Commit) IsMerge() bool { return !c.SecondParent.IsZero() }

// Time 提交时刻 (本地时区)
func (c *Commit) Time() time.Time { return time.Unix(c.Timestamp, 0) }

// Tree 返回 文件名 -> blob 指纹 的副本
func (c *Commit) Tree() map[string]types.Fingerprint {
	m := make(map[string]types.Fingerprint, len(c.Entries))
	for _, e := range c.Entries {
		m[e.Name] = e.Blob
	}
	return m
}

// Blob 查某个文件在这次提交里的版本
func (c *Commit) Blob(name string) (types.Fingerprint, bool) {
	for _, e := range c.Entries {
		if e.Name == name {
			return e.Blob, true
		}
	}
	return "", false
}

// Tracks 此提交是否跟踪该文件
func (c *Commit) Tracks(name string) bool {
	_, ok := c.Blob(name)
	return ok
}
