package scenes

import (
	"errors"
	"fmt"
	"io"

	"github.com/decker502/dropcatch/pkg/catch"
	"github.com/decker502/dropcatch/pkg/config"
	"github.com/decker502/dropcatch/pkg/game"
)

// LoadAssets 预加载 ids.Preload 资源组，再加载游戏循环需要的四个资源
// 任何一个失败都会释放已加载的资源并返回错误（不允许部分启动）
// 预加载阶段失败时已缓存的资源留在 ResourceManager 中，由其 Close 释放
func LoadAssets(rm *game.ResourceManager, am *game.AudioManager, ids config.AssetIDs) (assets catch.Assets, err error) {
	if ids.Preload != "" {
		if err := rm.LoadResourceGroup(ids.Preload); err != nil {
			return catch.Assets{}, fmt.Errorf("preload: %w", err)
		}
	}

	var acquired []io.Closer
	defer func() {
		if err == nil {
			return
		}
		for _, c := range acquired {
			err = errors.Join(err, c.Close())
		}
	}()

	sheet, err := rm.LoadTextureByID(ids.Sheet)
	if err != nil {
		return catch.Assets{}, fmt.Errorf("sheet texture: %w", err)
	}
	acquired = append(acquired, sheet)

	bucket, err := rm.LoadTextureByID(ids.Bucket)
	if err != nil {
		return catch.Assets{}, fmt.Errorf("bucket texture: %w", err)
	}
	acquired = append(acquired, bucket)

	sound, err := am.NewSound(ids.Catch)
	if err != nil {
		return catch.Assets{}, fmt.Errorf("catch sound: %w", err)
	}
	acquired = append(acquired, sound)

	music, err := am.NewMusic(ids.Music)
	if err != nil {
		return catch.Assets{}, fmt.Errorf("music: %w", err)
	}

	return catch.Assets{Sheet: sheet, Bucket: bucket, Catch: sound, Music: music}, nil
}
