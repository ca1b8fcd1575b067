//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	cp -r assets mobile/assets && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.dropcatch -o build/android/dropcatch.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	cp -r assets mobile/assets && ebitenmobile bind -target ios -tags mobile -o build/ios/DropCatch.xcframework -v ./mobile
package mobile

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/dropcatch/pkg/app"
	"github.com/decker502/dropcatch/pkg/embedded"
)

func init() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:  log.InfoLevel,
		Prefix: "dropcatch",
	})

	// assetsFS 在 embed.go 中声明
	if err := embedded.InitSub(assetsFS, "assets"); err != nil {
		logger.Fatal("嵌入资源初始化失败", "err", err)
	}

	// 触摸拖动即可操作，使用默认配置
	gameApp, err := app.NewApp(app.Config{
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("游戏初始化失败", "err", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
