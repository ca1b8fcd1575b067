package game

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 创建音效句柄（SoundEffect）和背景音乐句柄（Music）
//   - 从 SettingsManager 读取音量和开关，并在设置变化时立即应用
//
// 同一时间只有一首背景音乐；音效每次播放使用独立的播放器，可以相互重叠。
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager // 可为 nil，此时使用默认音量
	logger          *log.Logger
	currentMusic    *Music
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载和解码音频）
//   - sm: SettingsManager 实例（可为 nil）
func NewAudioManager(rm *ResourceManager, sm *SettingsManager, logger *log.Logger) *AudioManager {
	if logger == nil {
		logger = log.Default()
	}
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		logger:          logger.WithPrefix("AudioManager"),
	}
}

// NewSound 加载音效并返回句柄
//
// 参数：
//   - soundID: 音效资源ID（如 "SOUND_DROP"）
//
// 返回：
//   - *SoundEffect: 音效句柄
//   - error: 资源不存在或解码失败
func (am *AudioManager) NewSound(soundID string) (*SoundEffect, error) {
	pcm, err := am.resourceManager.LoadSoundByID(soundID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sound %s: %w", soundID, err)
	}
	return &SoundEffect{am: am, id: soundID, pcm: pcm}, nil
}

// NewMusic 打开流式背景音乐并返回句柄（尚未播放）
func (am *AudioManager) NewMusic(musicID string) (*Music, error) {
	filePath, err := am.resourceManager.ResolveID(musicID)
	if err != nil {
		return nil, fmt.Errorf("failed to load music %s: %w", musicID, err)
	}
	stream, err := am.resourceManager.OpenStream(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load music %s: %w", musicID, err)
	}
	return &Music{am: am, id: musicID, stream: stream}, nil
}

// SetMusicVolume 设置音乐音量并立即应用到当前音乐
func (am *AudioManager) SetMusicVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetMusicVolume(volume)
	}
	if am.currentMusic != nil && am.currentMusic.player != nil {
		am.currentMusic.player.SetVolume(am.musicVolume())
	}
}

// SetSoundVolume 设置音效音量，影响之后播放的音效
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
}

// VolumeStep 音量快捷键每次调整的幅度
const VolumeStep = 0.1

// AdjustVolume 将音乐和音效音量同时调整 delta，结果限制在 0.0 ~ 1.0
// 并按百分位取整，避免反复调整累积浮点误差
//
// 返回：
//   - float64: 调整后的音乐音量
func (am *AudioManager) AdjustVolume(delta float64) float64 {
	am.SetMusicVolume(roundVolume(am.musicVolume() + delta))
	am.SetSoundVolume(roundVolume(am.soundVolume() + delta))

	music := am.musicVolume()
	am.logger.Info("volume adjusted", "music", music, "sound", am.soundVolume())
	return music
}

func roundVolume(v float64) float64 {
	return math.Round(v*100) / 100
}

// ToggleMute 同时切换音乐和音效开关
//
// 返回：
//   - bool: 切换后是否处于静音状态
func (am *AudioManager) ToggleMute() bool {
	muted := !am.Muted()
	if am.settingsManager != nil {
		am.settingsManager.SetMusicEnabled(!muted)
		am.settingsManager.SetSoundEnabled(!muted)
	}

	if m := am.currentMusic; m != nil {
		if muted {
			m.Pause()
		} else {
			m.Play()
		}
	}

	am.logger.Info("mute toggled", "muted", muted)
	return muted
}

// Muted 音乐和音效是否都已关闭
func (am *AudioManager) Muted() bool {
	if am.settingsManager == nil {
		return false
	}
	s := am.settingsManager.GetSettings()
	return !s.MusicEnabled && !s.SoundEnabled
}

func (am *AudioManager) musicEnabled() bool {
	return am.settingsManager == nil || am.settingsManager.GetSettings().MusicEnabled
}

func (am *AudioManager) soundEnabled() bool {
	return am.settingsManager == nil || am.settingsManager.GetSettings().SoundEnabled
}

// musicVolume 获取音乐音量设置
func (am *AudioManager) musicVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().MusicVolume
	}
	return 0.7
}

// soundVolume 获取音效音量设置
func (am *AudioManager) soundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8
}

// SoundEffect 单次音效句柄
// 每次 Play 从共享的 PCM 数据创建新播放器，互不打断，也不等待播放结束
type SoundEffect struct {
	am     *AudioManager
	id     string
	pcm    []byte
	closed bool
}

// Play 播放一次（音效关闭或句柄已关闭时无效果）
func (s *SoundEffect) Play() {
	if s.closed || !s.am.soundEnabled() {
		return
	}
	player := s.am.resourceManager.AudioContext().NewPlayerFromBytes(s.pcm)
	player.SetVolume(s.am.soundVolume())
	player.Play()
}

// Close 释放句柄
func (s *SoundEffect) Close() error {
	s.closed = true
	s.pcm = nil
	return nil
}

// Music 流式背景音乐句柄
type Music struct {
	am      *AudioManager
	id      string
	stream  audioStream
	player  *audio.Player
	looping bool
	closed  bool
}

// SetLooping 设置是否循环播放
// 已创建的播放器会被丢弃，下一次 Play 从头开始
func (m *Music) SetLooping(looping bool) {
	if m.looping == looping {
		return
	}
	m.looping = looping
	if m.player != nil {
		m.closePlayer()
	}
}

// Looping 是否循环播放
func (m *Music) Looping() bool {
	return m.looping
}

// Play 开始或恢复播放
// 音乐关闭时只登记为当前音乐，解除静音后再播放
func (m *Music) Play() {
	if m.closed {
		return
	}
	m.am.currentMusic = m

	if !m.am.musicEnabled() {
		return
	}

	if m.player == nil {
		if _, err := m.stream.Seek(0, io.SeekStart); err != nil {
			m.am.logger.Warn("failed to rewind music", "id", m.id, "err", err)
			return
		}
		var src io.Reader = m.stream
		if m.looping {
			src = audio.NewInfiniteLoop(m.stream, m.stream.Length())
		}
		player, err := m.am.resourceManager.AudioContext().NewPlayer(src)
		if err != nil {
			m.am.logger.Warn("failed to create music player", "id", m.id, "err", err)
			return
		}
		m.player = player
	}

	m.player.SetVolume(m.am.musicVolume())
	m.player.Play()
	m.am.logger.Debug("playing music", "id", m.id, "looping", m.looping)
}

// Pause 暂停播放
func (m *Music) Pause() {
	if m.player != nil {
		m.player.Pause()
	}
}

// IsPlaying 是否正在播放
func (m *Music) IsPlaying() bool {
	return m.player != nil && m.player.IsPlaying()
}

// Close 停止播放并释放播放器，重复调用无效果
func (m *Music) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	if m.am.currentMusic == m {
		m.am.currentMusic = nil
	}
	return m.closePlayer()
}

func (m *Music) closePlayer() error {
	if m.player == nil {
		return nil
	}
	m.player.Pause()
	err := m.player.Close()
	m.player = nil
	if err != nil {
		return fmt.Errorf("failed to close music player %s: %w", m.id, err)
	}
	return nil
}
