// cmd/app.go
package cmd

import (
	"fmt"
	"io"

	"github.com/ColonelBlimp/fanremote/internal/audio"
	"github.com/ColonelBlimp/fanremote/internal/config"
	"github.com/ColonelBlimp/fanremote/internal/dispatch"
	"github.com/ColonelBlimp/fanremote/internal/logging"
	"github.com/ColonelBlimp/fanremote/internal/profile"
	"github.com/ColonelBlimp/fanremote/internal/recovery"
	"github.com/ColonelBlimp/fanremote/internal/transmit"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// app is the wiring shared by the commands that talk to the fan
type app struct {
	settings   *config.Settings
	log        *logrus.Logger
	store      *profile.Store
	loader     *profile.Loader
	tx         transmit.Transmitter
	dispatcher *dispatch.Dispatcher
}

// newApp reads settings, starts from the built-in profile, applies the
// configured profile document if any and opens the transmitter. Dry-run
// output goes to out.
func newApp(out io.Writer) (*app, error) {
	settings, err := config.Get()
	if err != nil {
		return nil, err
	}

	log, err := logging.New(settings.Debug, settings.LogFormat)
	if err != nil {
		return nil, err
	}
	recovery.SetLogger(log)

	store := profile.NewStore(profile.Default())
	loader := profile.NewLoader(store, afero.NewOsFs(), log)
	if settings.ProfilePath != "" {
		// A broken document leaves the built-in profile active
		_ = loader.LoadFile(settings.ProfilePath)
	}

	audioCfg := audio.DefaultConfig()
	audioCfg.DeviceIndex = settings.AudioDeviceIndex
	audioCfg.SampleRate = uint32(settings.AudioSampleRate)

	tx, err := transmit.New(transmit.Config{
		Backend:    settings.Transmitter,
		LIRCDevice: settings.LIRCDevice,
		Audio:      audioCfg,
		Volume:     settings.AudioVolume,
		Out:        out,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("transmitter: %w", err)
	}

	return &app{
		settings:   settings,
		log:        log,
		store:      store,
		loader:     loader,
		tx:         tx,
		dispatcher: dispatch.New(store, tx, log),
	}, nil
}

func (a *app) Close() {
	if err := transmit.Close(a.tx); err != nil {
		a.log.WithError(err).Warn("close transmitter")
	}
}
