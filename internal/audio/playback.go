// internal/audio/playback.go
// Package audio plays interleaved float32 sample buffers on a sound device.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
)

var (
	ErrNotInitialized  = errors.New("audio playback not initialized")
	ErrClosed          = errors.New("audio playback closed")
	ErrNoDevice        = errors.New("no audio playback device")
	ErrPlaybackTimeout = errors.New("audio playback did not drain in time")
)

// Config holds audio playback configuration
type Config struct {
	DeviceIndex int    // -1 for default device
	SampleRate  uint32 // e.g., 48000
	Channels    uint32 // 2 for the stereo IR blaster
	BufferSize  uint32 // frames per callback
}

// DefaultConfig returns defaults suited to driving an audio-jack IR blaster
func DefaultConfig() Config {
	return Config{
		DeviceIndex: -1,
		SampleRate:  48000,
		Channels:    2,
		BufferSize:  512,
	}
}

// Player writes buffers to a playback device, one buffer at a time
type Player struct {
	config Config
	ctx    *malgo.AllocatedContext
	closed bool
	mu     sync.Mutex
}

// New creates a new playback instance
func New(cfg Config) *Player {
	return &Player{config: cfg}
}

// Config returns the playback configuration
func (p *Player) Config() Config {
	return p.config
}

// Init initializes the audio backend. Calling it again is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if p.ctx != nil {
		return nil
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("init audio context: %w", err)
	}
	p.ctx = ctx
	return nil
}

// ListDevices returns available playback devices
func (p *Player) ListDevices() ([]malgo.DeviceInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.listDevices()
}

func (p *Player) listDevices() ([]malgo.DeviceInfo, error) {
	if p.ctx == nil {
		return nil, ErrNotInitialized
	}
	infos, err := p.ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("enumerate devices: %w", err)
	}
	return infos, nil
}

// Play sends interleaved samples to the device and blocks until they have
// been handed to the backend. Calls are serialized.
func (p *Player) Play(samples []float32) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if p.ctx == nil {
		return ErrNotInitialized
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.SampleRate = p.config.SampleRate
	deviceConfig.PeriodSizeInFrames = p.config.BufferSize
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = p.config.Channels

	if p.config.DeviceIndex >= 0 {
		devices, err := p.listDevices()
		if err != nil {
			return err
		}
		if p.config.DeviceIndex >= len(devices) {
			return fmt.Errorf("device index %d out of range (have %d devices)",
				p.config.DeviceIndex, len(devices))
		}
		deviceConfig.Playback.DeviceID = devices[p.config.DeviceIndex].ID.Pointer()
	}

	data := float32ToBytes(samples)
	done := make(chan struct{})
	var once sync.Once
	offset := 0

	// Callback pulls the next chunk; the tail of the last period is silence
	onSendFrames := func(outputSamples, inputSamples []byte, frameCount uint32) {
		n := copy(outputSamples, data[offset:])
		offset += n
		clear(outputSamples[n:])
		if offset >= len(data) {
			once.Do(func() { close(done) })
		}
	}

	device, err := malgo.InitDevice(p.ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onSendFrames,
	})
	if err != nil {
		return fmt.Errorf("init device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("start device: %w", err)
	}

	frames := len(samples) / int(max(p.config.Channels, 1))
	playTime := time.Duration(frames) * time.Second / time.Duration(max(p.config.SampleRate, 1))
	period := time.Duration(p.config.BufferSize) * time.Second / time.Duration(max(p.config.SampleRate, 1))

	select {
	case <-done:
		// Let the final period reach the speaker before stopping
		time.Sleep(period)
	case <-time.After(playTime + time.Second):
		_ = device.Stop()
		return ErrPlaybackTimeout
	}

	if err := device.Stop(); err != nil {
		return fmt.Errorf("stop device: %w", err)
	}
	return nil
}

// Close releases all audio resources
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if p.ctx != nil {
		if err := p.ctx.Uninit(); err != nil {
			return fmt.Errorf("uninit context: %w", err)
		}
		p.ctx.Free()
		p.ctx = nil
	}
	return nil
}

// float32ToBytes converts samples to little-endian IEEE 754 bytes
func float32ToBytes(samples []float32) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
	}
	return out
}
