// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"
)

const (
	AppName       = "fanremote"
	ConfigType    = "yaml"
	DefaultConfig = `# Fan Remote Configuration

# Handset profile
profile_path: ""          # JSON, YAML or TOML profile; empty uses the built-in handset
watch_profile: false      # Reload the profile when the file changes (interactive mode)

# Transmitter
transmitter: "lirc"       # lirc, audio, dryrun or none
lirc_device: "/dev/lirc0" # Kernel IR device (see 'ir-ctl -f')

# Audio-jack IR blaster (transmitter: audio)
audio_device_index: -1    # -1 for default playback device
audio_sample_rate: 48000  # Must exceed the 38kHz carrier
audio_volume: 0.9         # Output amplitude (0.0-1.0]

# Output
debug: false              # Enable debug output
log_format: "text"        # text or json
`
)

// Settings holds all application configuration
type Settings struct {
	// Handset profile
	ProfilePath  string `mapstructure:"profile_path"`
	WatchProfile bool   `mapstructure:"watch_profile"`

	// Transmitter
	Transmitter string `mapstructure:"transmitter"`
	LIRCDevice  string `mapstructure:"lirc_device"`

	// Audio-jack IR blaster
	AudioDeviceIndex int     `mapstructure:"audio_device_index"`
	AudioSampleRate  int     `mapstructure:"audio_sample_rate"`
	AudioVolume      float64 `mapstructure:"audio_volume"`

	// Output
	Debug     bool   `mapstructure:"debug"`
	LogFormat string `mapstructure:"log_format"`
}

// Transmitters lists the accepted transmitter values
var Transmitters = []string{"lirc", "audio", "dryrun", "none"}

// Init initializes Viper with defaults and config file.
// Config file search order: current directory, then ~/.config/fanremote/
func Init() error {
	SetDefaults()

	// Support both config.yaml and .config.yaml
	viper.SetConfigType(ConfigType)

	// Priority order: current directory first, then XDG config
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	// Read config file - if not found, create default in XDG config dir
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

// SetDefaults registers the default for every key
func SetDefaults() {
	viper.SetDefault("profile_path", "")
	viper.SetDefault("watch_profile", false)
	viper.SetDefault("transmitter", "lirc")
	viper.SetDefault("lirc_device", "/dev/lirc0")
	viper.SetDefault("audio_device_index", -1)
	viper.SetDefault("audio_sample_rate", 48000)
	viper.SetDefault("audio_volume", 0.9)
	viper.SetDefault("debug", false)
	viper.SetDefault("log_format", "text")
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges
func (s *Settings) Validate() error {
	var errs []error

	if !slices.Contains(Transmitters, s.Transmitter) {
		errs = append(errs, fmt.Errorf("transmitter must be one of %v, got %q", Transmitters, s.Transmitter))
	}
	if s.Transmitter == "lirc" && s.LIRCDevice == "" {
		errs = append(errs, errors.New("lirc_device must be set for the lirc transmitter"))
	}

	if s.AudioDeviceIndex < -1 {
		errs = append(errs, fmt.Errorf("audio_device_index must be -1 or a device index, got %d", s.AudioDeviceIndex))
	}
	if s.AudioSampleRate < 8000 || s.AudioSampleRate > 192000 {
		errs = append(errs, fmt.Errorf("audio_sample_rate must be between 8000 and 192000 Hz, got %d", s.AudioSampleRate))
	}
	// Audio output must sample faster than the carrier
	if s.Transmitter == "audio" && s.AudioSampleRate <= 38000 {
		errs = append(errs, fmt.Errorf("audio_sample_rate must exceed the 38000 Hz carrier, got %d", s.AudioSampleRate))
	}
	if s.AudioVolume <= 0.0 || s.AudioVolume > 1.0 {
		errs = append(errs, fmt.Errorf("audio_volume must be in (0.0, 1.0], got %v", s.AudioVolume))
	}

	if s.LogFormat != "text" && s.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", s.LogFormat))
	}

	if s.WatchProfile && s.ProfilePath == "" {
		errs = append(errs, errors.New("watch_profile requires profile_path"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
