// Package demo provides the object graph the CLI inspects.
package demo

import (
	"errors"
	"strings"
	"time"

	"github.com/go-drift/propgrid/pkg/meta"
	"github.com/go-drift/propgrid/pkg/notify"
)

// Preset values for Speaker.Mode.
const (
	PresetStudio    = 1
	PresetLive      = 2
	PresetBroadcast = 3
)

// Channel bits for Speaker.Channels.
const (
	ChannelLeft   = 1 << 0
	ChannelRight  = 1 << 1
	ChannelCenter = 1 << 2
	ChannelSub    = 1 << 3
)

// Speaker is a networked speaker with a mix of property kinds.
type Speaker struct {
	notify.Notifier

	Name    string `grid:"category=General,weight=10,desc=Shown on the device display"`
	Enabled bool   `grid:"category=General,weight=5"`
	Serial  string `grid:"category=General,readonly"`

	Mode     int
	Channels int
	Balance  float64
	Latency  time.Duration `grid:"category=Routing,desc=Output delay"`

	Host     string `grid:"category=Network"`
	Password string `grid:"category=Network,password"`

	volume int
}

// New returns a speaker in its factory state.
func New() *Speaker {
	return &Speaker{
		Name:     "Living room",
		Enabled:  true,
		Serial:   "SPK-0042",
		Mode:     PresetStudio,
		Channels: ChannelLeft | ChannelRight,
		Latency:  20 * time.Millisecond,
		Host:     "speaker.local",
		volume:   40,
	}
}

// Volume returns the master volume.
func (s *Speaker) Volume() int { return s.volume }

// SetVolume sets the master volume and announces the change.
func (s *Speaker) SetVolume(v int) {
	if v == s.volume {
		return
	}
	s.volume = v
	s.NotifyPropertyChanged("Volume")
}

// ValidateProperty reports advisory problems with the current values.
func (s *Speaker) ValidateProperty(name string) []error {
	switch name {
	case "Name":
		if strings.TrimSpace(s.Name) == "" {
			return []error{errors.New("name must not be empty")}
		}
	case "Host":
		if strings.ContainsAny(s.Host, " \t") {
			return []error{errors.New("host must not contain spaces")}
		}
	case "Channels":
		if s.Channels == 0 {
			return []error{errors.New("no channel selected")}
		}
	}
	return nil
}

// Samples lists the types a metadata file may describe.
func Samples() []any {
	return []any{(*Speaker)(nil)}
}

// Registry returns a registry with the built-in metadata of the demo types.
func Registry() *meta.Registry {
	reg := meta.NewRegistry()
	meta.RegisterType[Speaker](reg, meta.TypeMetadata{
		Properties: map[string]meta.PropertyOptions{
			"Volume": {
				Category:    "Output",
				DisplayName: "Master volume",
				SortWeight:  10,
				Default:     50,
				Range:       &meta.Range{Min: 0, Max: 100, Step: 5},
			},
			"Balance": {
				Category: "Output",
				Range:    &meta.Range{Min: -1, Max: 1, Step: 0.1},
			},
			"Mode": {
				Category: "Output",
				Enum: meta.NewEnum("Preset",
					meta.EnumValue{Name: "Studio", Value: PresetStudio},
					meta.EnumValue{Name: "Live", Value: PresetLive},
					meta.EnumValue{Name: "Broadcast", Value: PresetBroadcast},
				),
			},
			"Channels": {
				Category: "Routing",
				Enum: meta.NewFlags("Channel",
					meta.EnumValue{Name: "Left", Value: ChannelLeft},
					meta.EnumValue{Name: "Right", Value: ChannelRight},
					meta.EnumValue{Name: "Center", Value: ChannelCenter},
					meta.EnumValue{Name: "Sub", Value: ChannelSub},
				),
			},
		},
		Categories: map[string]meta.CategoryOptions{
			"General": {SortWeight: 30},
			"Output":  {DisplayName: "Audio output", SortWeight: 20},
			"Routing": {SortWeight: 10},
			"Network": {Collapsed: true},
		},
	})
	return reg
}
