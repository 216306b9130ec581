package exporter

import (
	"fmt"
	"io"

	"gitlet/pkg/core"
	"gitlet/pkg/types"
)

// dateLayout 展示时间用的固定格式，本地时区
// 例: Thu Jan 01 00:00:00 1970 +0000
const dateLayout = "Mon Jan 02 15:04:05 2006 -0700"

// PrintCommit 按 log 格式输出一条提交记录
func PrintCommit(w io.Writer, fp types.Fingerprint, c *core.Commit) {
	fmt.Fprintln(w, "===")
	fmt.Fprintf(w, "commit %s\n", fp)
	if c.IsMerge() {
		fmt.Fprintf(w, "Merge: %s %s\n", c.Parent.Abbrev(), c.SecondParent.Abbrev())
	}
	fmt.Fprintf(w, "Date: %s\n", c.Time().Format(dateLayout))
	// 消息后跟一个空行，分隔相邻的记录
	fmt.Fprintf(w, "%s\n\n", c.Message)
}
