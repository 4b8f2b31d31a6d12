package constants

import "time"

const (
	CacheKeyPostsAll = "board:posts:all" // 全部帖子列表（首页与管理面板）
	CacheKeyFlash    = "board:flash:%s"  // 一次性提示消息，%s 为 flash cookie 里的 uuid
)

const (
	CacheExpirePostsAll = 5 * time.Minute
	CacheExpireFlash    = 10 * time.Minute
)
