// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的资源。
//
// 未调用 Init() 时（工具程序、单元测试）所有读取都回退到磁盘。
package embedded

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// LevelsDir 关卡配置目录
const LevelsDir = "data/levels"

var (
	dataFS      fs.FS
	initialized bool
)

// Init 设置嵌入的数据文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 统一路径分隔符并去掉 "./" 前缀
func normalize(p string) string {
	return strings.TrimPrefix(filepath.ToSlash(p), "./")
}

// useEmbedded 判断路径是否应从嵌入资源读取
func useEmbedded(p string) bool {
	return initialized && strings.HasPrefix(p, "data/")
}

// ReadFile 读取文件内容
// 已初始化且路径以 "data/" 开头时读取嵌入资源，否则读取磁盘
func ReadFile(p string) ([]byte, error) {
	p = normalize(p)
	if useEmbedded(p) {
		data, err := fs.ReadFile(dataFS, p)
		if err != nil {
			return nil, fmt.Errorf("embedded: %w", err)
		}
		return data, nil
	}
	return os.ReadFile(filepath.FromSlash(p))
}

// Exists 检查文件是否存在
func Exists(p string) bool {
	p = normalize(p)
	if useEmbedded(p) {
		_, err := fs.Stat(dataFS, p)
		return err == nil
	}
	_, err := os.Stat(filepath.FromSlash(p))
	return err == nil
}

// ListLevels 返回所有关卡 ID（data/levels 下的 yaml 文件名，按字母排序）
func ListLevels() ([]string, error) {
	var entries []fs.DirEntry
	var err error
	if initialized {
		entries, err = fs.ReadDir(dataFS, LevelsDir)
	} else {
		entries, err = os.ReadDir(filepath.FromSlash(LevelsDir))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".yaml" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".yaml"))
	}
	sort.Strings(ids)
	return ids, nil
}

// LevelPath 返回关卡 ID 对应的配置路径
func LevelPath(id string) string {
	return path.Join(LevelsDir, id+".yaml")
}
