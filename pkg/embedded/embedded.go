// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）或 mobile 包中。
// 本包保存启动时注册的资源文件系统，让其他包无需关心资源来自
// 嵌入数据还是磁盘目录（--assets）。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

// ErrNotInitialized Init 之前访问资源
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	mu     sync.RWMutex
	assets fs.FS
)

// Init 注册资源文件系统
// root 的根目录对应资源目录本身（即包含 config/、images/、sounds/ 的目录）
func Init(root fs.FS) {
	mu.Lock()
	defer mu.Unlock()
	assets = root
}

// InitSub 用 fsys 的 dir 子目录初始化，嵌入的 embed.FS 通常带有 "assets" 前缀
func InitSub(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return fmt.Errorf("sub %q: %w", dir, err)
	}
	Init(sub)
	return nil
}

// FS 返回已注册的资源文件系统
func FS() (fs.FS, error) {
	mu.RLock()
	defer mu.RUnlock()
	if assets == nil {
		return nil, ErrNotInitialized
	}
	return assets, nil
}
