//go:build !mobile

// 普通构建下 mobile 包只有这个文件，真正的绑定代码需要 -tags mobile
package mobile

// Dummy 让 ebitenmobile bind 之外的构建也能引用本包
func Dummy() {}
