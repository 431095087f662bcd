// Package policy 定义视频可见性规则。
//
// 规则：管理员可见全部视频；作者可见自己的视频（无论是否发布）；其他人（含匿名）只能看到已发布视频。
// 不可见与不存在对外表现一致，都是 NotFound。
package policy

// Viewer 当前请求者身份，UserID 为 0 表示匿名
type Viewer struct {
	UserID  int64
	IsStaff bool
}

// Anonymous 匿名访问者
var Anonymous = Viewer{}

// Authenticated 是否已登录
func (v Viewer) Authenticated() bool {
	return v.UserID != 0
}

// CanViewVideo 判断访问者能否看到某个视频
func (v Viewer) CanViewVideo(ownerID int64, published bool) bool {
	if v.IsStaff {
		return true
	}
	if v.Authenticated() && v.UserID == ownerID {
		return true
	}
	return published
}
