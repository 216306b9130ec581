package usererr

import (
	"errors"
	"fmt"
)

// Error 是直接展示给用户的预期错误：缺文件、分支已存在、暂存区为空等。
// 顶层打印 Msg 后以成功状态退出，与内部错误 (I/O、数据损坏) 区分开。
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

// New 构造一个用户可见错误
func New(msg string) error {
	return &Error{Msg: msg}
}

func Errorf(format string, a ...any) error {
	return &Error{Msg: fmt.Sprintf(format, a...)}
}

// From 从错误链中提取用户可见错误
func From(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
