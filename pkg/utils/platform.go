//go:build !mobile

package utils

import "os"

// IsMobile 是否按移动端方式处理输入
// 桌面端设置 CHARGEFRAME_MOBILE_EMULATE=1 可以模拟触摸移动（本地调试用）
func IsMobile() bool {
	return os.Getenv("CHARGEFRAME_MOBILE_EMULATE") == "1"
}
