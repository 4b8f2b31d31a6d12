package constants

import "time"

const (
	SessionCookieName = "session"  // 会话 JWT 的 cookie 名
	FlashCookieName   = "flash_id" // 一次性提示消息的 cookie 名

	AdminUsername = "admin" // 保留的管理员用户名，启动时初始化

	SessionDuration = 7 * 24 * time.Hour // 会话有效期
)
