//go:build !android

package game

// ensureStorageDir 非 Android 平台由 gdata 自行创建存储目录
func ensureStorageDir() error {
	return nil
}
