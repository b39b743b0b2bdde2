package po

import "strings"

// Notification 累积校验错误，使调用方一次拿到全部问题。
type Notification struct {
	errs []string
}

// NewNotification 构造空的 Notification。
func NewNotification() *Notification {
	return &Notification{}
}

// Append 追加一条错误信息，空字符串忽略。
func (n *Notification) Append(message string) *Notification {
	if message != "" {
		n.errs = append(n.errs, message)
	}
	return n
}

// HasErrors 是否存在错误。
func (n *Notification) HasErrors() bool {
	return n != nil && len(n.errs) > 0
}

// Errors 返回错误列表的副本。
func (n *Notification) Errors() []string {
	if n == nil {
		return nil
	}
	return append([]string(nil), n.errs...)
}

func (n *Notification) Error() string {
	return strings.Join(n.errs, "; ")
}
