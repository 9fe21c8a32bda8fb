package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battmon/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		LowThreshold:      ptr.To(20),
		CriticalThreshold: ptr.To(10),
		CheckInterval:     ptr.To(60),
	}
)

var _ Config = &File{}

// File is a Config loaded from a JSON file. Unset fields fall back to
// defaults.
type File struct {
	c        *RawFileConfig
	filepath string
}

// NewFile loads and validates the config at configPath. A missing or empty
// file yields the defaults.
func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
	}
	err := f.load()
	if err != nil {
		return nil, err
	}

	err = Validate(f)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "invalid config in %s", configPath)
	}

	return f, nil
}

// NewFileFromConfig wraps an in-memory RawFileConfig. It does not validate;
// call Validate before handing it to a monitor.
func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	// Copy so later changes to c by the caller are not observed.
	cp := *c
	cp.AlertCommand = append([]string(nil), c.AlertCommand...)

	f := &File{
		c:        &cp,
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	LowThreshold      *int `json:"lowThreshold,omitempty"`
	CriticalThreshold *int `json:"criticalThreshold,omitempty"`
	// CheckInterval is in seconds.
	CheckInterval *int     `json:"checkInterval,omitempty"`
	AlertCommand  []string `json:"alertCommand,omitempty"`
}

// NewRawFileConfigFromConfig returns the effective values of c, with every
// default filled in.
func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		LowThreshold:      ptr.To(c.LowThreshold()),
		CriticalThreshold: ptr.To(c.CriticalThreshold()),
		CheckInterval:     ptr.To(int(c.CheckInterval() / time.Second)),
		AlertCommand:      c.AlertCommand(),
	}

	return rawConfig, nil
}

func (f *File) LowThreshold() int {
	if f.c == nil {
		panic("config is nil")
	}

	return ptr.Deref(f.c.LowThreshold, *defaultFileConfig.LowThreshold)
}

func (f *File) CriticalThreshold() int {
	if f.c == nil {
		panic("config is nil")
	}

	return ptr.Deref(f.c.CriticalThreshold, *defaultFileConfig.CriticalThreshold)
}

func (f *File) CheckInterval() time.Duration {
	if f.c == nil {
		panic("config is nil")
	}

	seconds := ptr.Deref(f.c.CheckInterval, *defaultFileConfig.CheckInterval)

	return time.Duration(seconds) * time.Second
}

func (f *File) AlertCommand() []string {
	if f.c == nil {
		panic("config is nil")
	}

	return append([]string(nil), f.c.AlertCommand...)
}

func (f *File) load() error {
	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"lowThreshold":      f.LowThreshold(),
		"criticalThreshold": f.CriticalThreshold(),
		"checkInterval":     f.CheckInterval().String(),
		"alertCommand":      strings.Join(f.c.AlertCommand, " "),
	}
}
