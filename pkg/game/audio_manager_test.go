package game

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/decker502/towerdemo/pkg/config"
)

func TestSynthesizeTone(t *testing.T) {
	pcm, err := SynthesizeTone(config.AudioSampleRate, config.ShootBlipFrequency, config.ShootBlipDuration)
	if err != nil {
		t.Fatalf("SynthesizeTone() error: %v", err)
	}

	wantFrames := int(config.AudioSampleRate * config.ShootBlipDuration)
	if len(pcm) != wantFrames*bytesPerFrame {
		t.Fatalf("PCM length: got %d, want %d", len(pcm), wantFrames*bytesPerFrame)
	}

	limit := int16(math.Ceil(toneAmplitude * math.MaxInt16))
	for i := 0; i < wantFrames; i++ {
		left := int16(binary.LittleEndian.Uint16(pcm[i*bytesPerFrame:]))
		right := int16(binary.LittleEndian.Uint16(pcm[i*bytesPerFrame+2:]))
		if left != right {
			t.Fatalf("frame %d: channels differ (%d vs %d)", i, left, right)
		}
		if left > limit || left < -limit {
			t.Fatalf("frame %d: sample %d exceeds amplitude", i, left)
		}
	}
}

func TestSynthesizeToneInvalid(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		freq     float64
		duration float64
	}{
		{"zero rate", 0, 440, 0.1},
		{"zero frequency", config.AudioSampleRate, 0, 0.1},
		{"negative duration", config.AudioSampleRate, 440, -1},
		{"NaN duration", config.AudioSampleRate, 440, math.NaN()},
		{"infinite frequency", config.AudioSampleRate, math.Inf(1), 0.1},
		{"sub-sample duration", config.AudioSampleRate, 440, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SynthesizeTone(tt.rate, tt.freq, tt.duration); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestAudioManagerSilent 无音频上下文时所有播放请求静默失败
func TestAudioManagerSilent(t *testing.T) {
	sm := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)

	if !am.IsSilent() {
		t.Error("audio manager without context should be silent")
	}
	if am.PlaySound(SoundShot) {
		t.Error("PlaySound should return false without an audio context")
	}

	am.SetSoundVolume(2)
	if am.GetSoundVolume() != 1.0 {
		t.Errorf("volume should clamp to 1.0, got %v", am.GetSoundVolume())
	}

	sm.SetSoundEnabled(false)
	if am.PlaySound(SoundShot) {
		t.Error("PlaySound should return false when sound is disabled")
	}
}

func TestAudioManagerNilSettings(t *testing.T) {
	am := NewAudioManager(nil, nil)
	if got := am.GetSoundVolume(); got != DefaultSettings().SoundVolume {
		t.Errorf("default volume: got %v, want %v", got, DefaultSettings().SoundVolume)
	}
	if am.PlaySound("SOUND_UNKNOWN") {
		t.Error("unknown sound should not play")
	}
}
