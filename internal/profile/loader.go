// internal/profile/loader.go
package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var (
	// ErrLoad wraps every failed load. The active profile is unchanged when
	// it is returned.
	ErrLoad = errors.New("profile load failed")
)

// DocumentFormat picks the decoder for a profile document from its file name.
// JSON is assumed when the extension is not recognised.
func DocumentFormat(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return "json"
	}
}

// ParseSpec decodes a profile document. The top level must be an object.
// Slot keys and action fields match exactly; any other key is ignored.
func ParseSpec(r io.Reader, format string) (Spec, error) {
	doc, err := decodeDocument(r, format)
	if err != nil {
		return Spec{}, fmt.Errorf("parse %s document: %w", format, err)
	}

	var spec Spec
	var errs []error
	for _, slot := range Slots() {
		raw, ok := doc[slot.Key()]
		if !ok || raw == nil {
			continue
		}
		entry, err := decodeAction(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", slot.Key(), err))
			continue
		}
		spec.Set(slot, entry)
	}
	if err := errors.Join(errs...); err != nil {
		return Spec{}, err
	}
	return spec, spec.Validate()
}

// decodeDocument reads the whole document with the decoder for format and
// keeps key case as written.
func decodeDocument(r io.Reader, format string) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var v any
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &v)
	case "toml":
		err = toml.Unmarshal(data, &v)
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err = dec.Decode(&v); err == nil && dec.More() {
			err = errors.New("trailing data after document")
		}
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
	if err != nil {
		return nil, err
	}

	doc, ok := stringKeys(v)
	if !ok {
		return nil, fmt.Errorf("%w: document must be an object, got %s", ErrInvalidDocument, describe(v))
	}
	return doc, nil
}

// stringKeys returns v as a map keyed by string. YAML mappings with
// non-string keys keep only their string keys.
func stringKeys(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if ks, ok := k.(string); ok {
				out[ks] = val
			}
		}
		return out, true
	}
	return nil, false
}

func describe(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}

func decodeAction(raw any) (*ActionSpec, error) {
	fields, ok := stringKeys(raw)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object, got %s", ErrInvalidDocument, describe(raw))
	}
	var entry ActionSpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:    &entry,
		TagName:   "mapstructure",
		MatchName: func(key, field string) bool { return key == field },
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &entry, nil
}

// ReadSpecFile reads and decodes the document at path.
func ReadSpecFile(fsys afero.Fs, path string) (Spec, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Spec{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseSpec(bytes.NewReader(data), DocumentFormat(path))
}

// Loader replaces the active profile of a Store from profile documents.
type Loader struct {
	store *Store
	fs    afero.Fs
	log   logrus.FieldLogger
}

// NewLoader creates a loader reading documents from fsys.
func NewLoader(store *Store, fsys afero.Fs, log logrus.FieldLogger) *Loader {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{store: store, fs: fsys, log: log}
}

// Store returns the store this loader publishes to.
func (l *Loader) Store() *Store { return l.store }

// LoadFile loads the document at path and makes it the active profile.
// On any failure the active profile is left as it was and the failure is
// logged; the returned error is for diagnostics only.
func (l *Loader) LoadFile(path string) error {
	log := l.log.WithField("path", path)

	spec, err := ReadSpecFile(l.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("no custom profile found")
		} else {
			log.WithError(err).Error("failed to load profile")
		}
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return l.apply(path, spec, log)
}

// LoadReader loads a document supplied by the caller.
func (l *Loader) LoadReader(name string, r io.Reader, format string) error {
	log := l.log.WithField("path", name)

	spec, err := ParseSpec(r, format)
	if err != nil {
		log.WithError(err).Error("failed to parse profile")
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return l.apply(name, spec, log)
}

func (l *Loader) apply(name string, spec Spec, log logrus.FieldLogger) error {
	p, err := Build(name, spec)
	if err != nil {
		log.WithError(err).Error("invalid profile")
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}
	l.store.Swap(p)

	bound := make([]string, 0, len(p.Bound()))
	for _, s := range p.Bound() {
		bound = append(bound, s.Key())
	}
	log.WithField("slots", strings.Join(bound, ",")).Info("loaded custom profile")
	return nil
}
