//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureStorageDir 在打开 gdata 之前创建 Android 的存储目录
// gdata 在 Android 上使用 /data/data/<包名>/，但不会创建 saves 子目录
func EnsureStorageDir() error {
	dir, err := storageDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create saves directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("saves directory %s is not writable: %w", dir, err)
	}
	return os.Remove(testFile)
}

// storageDir 返回 /data/data/<包名>/saves，包名从 /proc/self/cmdline 读取
func storageDir() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", fmt.Errorf("failed to detect Android package: %w", err)
	}
	pkg := strings.Map(func(r rune) rune {
		if r == 0 || r == '\n' {
			return -1
		}
		return r
	}, string(data))
	if pkg == "" {
		return "", fmt.Errorf("failed to detect Android package: empty /proc/self/cmdline")
	}
	return filepath.Join("/data/data", pkg, "saves"), nil
}
