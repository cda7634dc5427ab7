package game

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"

	"github.com/decker502/towerdemo/pkg/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// 音频参数
const (
	// SoundShot 发射音效ID
	SoundShot = "SOUND_SHOT"

	toneAmplitude = 0.3
	bytesPerFrame = 4 // 16 位有符号小端，双声道
)

// AudioManager 音频管理器
// 职责：
//   - 管理合成音效的播放器
//   - 从 SettingsManager 读取音量和开关
//
// audio.Context 为 nil 时进入静音模式，所有播放请求返回 false
type AudioManager struct {
	audioContext    *audio.Context
	settingsManager *SettingsManager         // 可为 nil
	soundPlayers    map[string]*audio.Player // 音效ID -> 播放器
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: 音频上下文，可为 nil（静音）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		audioContext:    ctx,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
	}
	if err := am.RegisterTone(SoundShot, config.ShootBlipFrequency, config.ShootBlipDuration); err != nil {
		log.Printf("[AudioManager] Warning: %v", err)
	}
	return am
}

// IsSilent 是否处于静音模式（无音频上下文）
func (am *AudioManager) IsSilent() bool {
	return am.audioContext == nil
}

// RegisterTone 合成一段衰减正弦音并注册为音效
func (am *AudioManager) RegisterTone(soundID string, frequency, duration float64) error {
	pcm, err := SynthesizeTone(config.AudioSampleRate, frequency, duration)
	if err != nil {
		return fmt.Errorf("failed to synthesize %s: %w", soundID, err)
	}
	if am.audioContext == nil {
		return nil
	}
	am.soundPlayers[soundID] = am.audioContext.NewPlayerFromBytes(pcm)
	return nil
}

// PlaySound 播放音效
// 音效使用 SoundVolume 设置控制音量，单次播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player, ok := am.soundPlayers[soundID]
	if !ok {
		return false
	}

	player.SetVolume(am.GetSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量并立即应用到已缓存的播放器
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
		volume = am.settingsManager.GetSettings().SoundVolume
	} else {
		volume = clampVolume(volume)
	}
	for _, player := range am.soundPlayers {
		player.SetVolume(volume)
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return DefaultSettings().SoundVolume
}

// SynthesizeTone 生成线性衰减的正弦波 PCM（16 位有符号小端，双声道）
func SynthesizeTone(sampleRate int, frequency, duration float64) ([]byte, error) {
	if sampleRate <= 0 || !(frequency > 0) || !(duration > 0) ||
		math.IsInf(frequency, 0) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("invalid tone: rate=%d freq=%v duration=%v", sampleRate, frequency, duration)
	}

	frames := int(math.Round(float64(sampleRate) * duration))
	if frames == 0 {
		return nil, fmt.Errorf("tone shorter than one sample: %v s", duration)
	}

	pcm := make([]byte, frames*bytesPerFrame)
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(sampleRate)
		envelope := 1 - float64(i)/float64(frames)
		v := int16(math.Sin(2*math.Pi*frequency*t) * envelope * toneAmplitude * math.MaxInt16)
		binary.LittleEndian.PutUint16(pcm[i*bytesPerFrame:], uint16(v))
		binary.LittleEndian.PutUint16(pcm[i*bytesPerFrame+2:], uint16(v))
	}
	return pcm, nil
}
