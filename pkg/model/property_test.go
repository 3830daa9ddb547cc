package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	griderrors "github.com/go-drift/propgrid/pkg/errors"
	"github.com/go-drift/propgrid/pkg/meta"
	"github.com/go-drift/propgrid/pkg/notify"
)

type device struct {
	notify.Notifier

	Name    string
	Enabled bool
	Volume  int
	Serial  string `grid:"readonly"`

	writes int
}

func (d *device) SetVolume(v int) {
	d.writes++
	if d.Volume == v {
		return
	}
	d.Volume = v
	d.NotifyPropertyChanged("Volume")
}

func deviceRegistry(volume meta.PropertyOptions) *meta.Registry {
	reg := meta.NewRegistry()
	meta.RegisterType[device](reg, meta.TypeMetadata{
		Properties: map[string]meta.PropertyOptions{"Volume": volume},
	})
	return reg
}

func bindDevice(t *testing.T, opts ...Option) (*Source, *device) {
	t.Helper()
	dev := &device{Name: "A", Enabled: true, Volume: 50, Serial: "SN-1"}
	reg := deviceRegistry(meta.PropertyOptions{Range: &meta.Range{Min: 0, Max: 100}})
	src := NewSource(append([]Option{WithRegistry(reg)}, opts...)...)
	src.Bind(dev)
	return src, dev
}

type channel struct {
	Name    string
	Enabled bool
	Volume  int
}

func TestScenarioVolumeRange(t *testing.T) {
	reg := meta.NewRegistry()
	meta.RegisterType[channel](reg, meta.TypeMetadata{
		Properties: map[string]meta.PropertyOptions{"Volume": {Range: &meta.Range{Min: 0, Max: 100}}},
	})
	obj := &channel{Name: "A", Enabled: true, Volume: 50}
	src := NewSource(WithRegistry(reg))
	src.Bind(obj)
	require.Equal(t, 3, src.Len())

	volume := src.Property("Volume")
	require.NotNil(t, volume)

	volume.SetValue(150)
	assert.False(t, volume.CommitOrRollback())
	assert.Equal(t, 50, volume.Value())
	assert.Equal(t, 50, volume.OriginalValue())
	assert.Equal(t, 50, obj.Volume)

	errs := volume.Errors()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], griderrors.ErrOutOfRange)
	assert.False(t, src.IsValid())

	volume.SetValue(75)
	assert.True(t, volume.CommitOrRollback())
	assert.Equal(t, 75, volume.OriginalValue())
	assert.Equal(t, 75, obj.Volume)
	assert.True(t, volume.IsValid())
	assert.True(t, src.IsValid())
}

func TestCommitRoundTrip(t *testing.T) {
	tests := []struct {
		property string
		input    any
		want     any
	}{
		{"Name", "B", "B"},
		{"Name", 12, "12"},
		{"Enabled", "false", false},
		{"Enabled", false, false},
		{"Volume", "75", 75},
		{"Volume", 20.0, 20},
		{"Volume", int64(0), 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s=%v", tt.property, tt.input), func(t *testing.T) {
			src, _ := bindDevice(t)
			p := src.Property(tt.property)
			require.NotNil(t, p)

			p.SetValue(tt.input)
			require.True(t, p.CommitOrRollback())

			assert.Equal(t, tt.want, p.OriginalValue())
			assert.Equal(t, tt.want, p.Value())
			assert.True(t, p.IsValid())
			assert.False(t, p.IsDirty())

			live, err := p.Descriptor().Value()
			require.NoError(t, err)
			assert.Equal(t, tt.want, live)
		})
	}
}

func TestCommitRollsBackInconvertibleInput(t *testing.T) {
	for _, input := range []any{"abc", 2.5, nil, struct{}{}} {
		t.Run(fmt.Sprintf("%v", input), func(t *testing.T) {
			src, dev := bindDevice(t)
			p := src.Property("Volume")

			p.SetValue(input)
			assert.False(t, p.CommitOrRollback())
			assert.Equal(t, 50, p.Value())
			assert.Equal(t, 50, p.OriginalValue())
			assert.Equal(t, 50, dev.Volume)
			assert.ErrorIs(t, p.Errors()[0], griderrors.ErrNotConvertible)
		})
	}
}

func TestCommitFallsBackToDefault(t *testing.T) {
	dev := &device{Volume: 50}
	reg := deviceRegistry(meta.PropertyOptions{Default: 10, Range: &meta.Range{Min: 0, Max: 100}})
	src := NewSource(WithRegistry(reg))
	src.Bind(dev)

	p := src.Property("Volume")
	converted, ok := p.TryConvert("loud")
	require.True(t, ok)
	assert.Equal(t, 10, converted)

	p.SetValue("loud")
	assert.True(t, p.CommitOrRollback())
	assert.Equal(t, 10, dev.Volume)
	assert.Equal(t, 10, p.OriginalValue())
}

func TestStructuralErrorClearedByNextCommit(t *testing.T) {
	src, _ := bindDevice(t)
	p := src.Property("Volume")

	var fields []string
	p.AddPropertyListener(func(f string) { fields = append(fields, f) })

	p.SetValue("abc")
	p.CommitOrRollback()
	assert.False(t, p.IsValid())
	assert.Contains(t, fields, FieldErrors)

	p.SetValue(60)
	require.True(t, p.CommitOrRollback())
	assert.Empty(t, p.Errors())
}

func TestReadOnlyProperty(t *testing.T) {
	src, dev := bindDevice(t)
	p := src.Property("Serial")
	require.True(t, p.IsReadOnly())

	p.SetReadOnly(false)
	assert.True(t, p.IsReadOnly(), "descriptor without a setter stays read-only")

	p.SetValue("SN-2")
	assert.False(t, p.CommitOrRollback())
	assert.Equal(t, "SN-1", p.Value())
	assert.Equal(t, "SN-1", dev.Serial)
	assert.ErrorIs(t, p.Errors()[0], griderrors.ErrReadOnly)
}

func TestSetReadOnlyNotifies(t *testing.T) {
	src, _ := bindDevice(t)
	p := src.Property("Name")

	var fields []string
	p.AddPropertyListener(func(f string) { fields = append(fields, f) })

	p.SetReadOnly(true)
	p.SetReadOnly(true)
	assert.Equal(t, []string{FieldReadOnly}, fields)

	p.SetValue("Z")
	assert.False(t, p.CommitOrRollback())

	p.SetReadOnly(false)
	p.SetValue("Z")
	assert.True(t, p.CommitOrRollback())
}

func TestLiveSyncSingleWrite(t *testing.T) {
	for _, input := range []any{75, "75", 75.0} {
		t.Run(fmt.Sprintf("%T", input), func(t *testing.T) {
			src, dev := bindDevice(t, WithLiveSync(true))
			p := src.Property("Volume")
			require.True(t, p.LiveSync())

			valueChanges := 0
			p.AddPropertyListener(func(f string) {
				if f == FieldValue {
					valueChanges++
				}
			})
			objectChanges, valueEvents := 0, 0
			src.AddListener(func(e Event) {
				switch {
				case e.Kind == EventPropertyChanged && e.Field == "":
					objectChanges++
				case e.Field == FieldValue:
					valueEvents++
				}
			})

			before := dev.writes
			p.SetValue(input)

			assert.Equal(t, 1, dev.writes-before)
			assert.Equal(t, 1, valueChanges)
			assert.Equal(t, 1, valueEvents)
			assert.Equal(t, 1, objectChanges)
			assert.Equal(t, 75, p.Value())
			assert.Equal(t, 75, p.OriginalValue())
			assert.False(t, p.IsDirty())
		})
	}
}

func TestLiveSyncRollbackNotifiesOnce(t *testing.T) {
	src, dev := bindDevice(t, WithLiveSync(true))
	p := src.Property("Volume")

	valueChanges := 0
	p.AddPropertyListener(func(f string) {
		if f == FieldValue {
			valueChanges++
		}
	})

	p.SetValue("loud")
	assert.Equal(t, 1, valueChanges)
	assert.Equal(t, 50, p.Value())
	assert.Equal(t, 50, dev.Volume)
	assert.False(t, p.IsDirty())
	require.NotEmpty(t, p.Errors())
	assert.ErrorIs(t, p.Errors()[0], griderrors.ErrNotConvertible)
}

func TestSetValueWithoutLiveSyncDoesNotWrite(t *testing.T) {
	src, dev := bindDevice(t)
	p := src.Property("Volume")

	p.SetValue(80)
	assert.Equal(t, 0, dev.writes)
	assert.Equal(t, 80, p.Value())
	assert.Equal(t, 50, p.OriginalValue())
	assert.True(t, p.IsDirty())

	p.Reset()
	assert.Equal(t, 50, p.Value())
	assert.False(t, p.IsDirty())
}

func TestRefreshFromSourceIsEqualityGated(t *testing.T) {
	src, dev := bindDevice(t)
	p := src.Property("Name")

	calls := 0
	p.AddPropertyListener(func(string) { calls++ })

	p.RefreshFromSource()
	assert.Equal(t, 0, calls)

	dev.Name = "B"
	p.RefreshFromSource()
	assert.Equal(t, "B", p.Value())
	assert.Equal(t, "B", p.OriginalValue())
	assert.Equal(t, 2, calls)
}

type port struct {
	Number int
}

func (p *port) ValidateProperty(name string) []error {
	if name == "Number" && p.Number < 1024 {
		return []error{fmt.Errorf("port %d is privileged", p.Number)}
	}
	return nil
}

func TestValidationDoesNotRollBack(t *testing.T) {
	obj := &port{Number: 8080}
	src := NewSource(WithRegistry(meta.NewRegistry()))
	src.Bind(obj)
	p := src.Property("Number")
	require.True(t, p.IsValid())

	p.SetValue(80)
	assert.True(t, p.CommitOrRollback())
	assert.Equal(t, 80, obj.Number)
	assert.False(t, p.IsValid())
	assert.False(t, p.IsReadOnly())
	assert.EqualError(t, p.Errors()[0], "port 80 is privileged")
	assert.Len(t, src.Errors()["Number"], 1)

	p.SetValue("x")
	assert.False(t, p.CommitOrRollback())
	assert.Len(t, p.Errors(), 2)
}

func TestCompare(t *testing.T) {
	mk := func(name, display string, weight int) *Property {
		return &Property{desc: &meta.Descriptor{Name: name, DisplayName: display}, sortWeight: weight}
	}
	heavy := mk("Z", "zulu", 10)
	apple := mk("A", "apple", 0)
	banana := mk("B", "Banana", 0)
	twin := mk("C", "APPLE", 0)

	assert.Negative(t, heavy.Compare(apple))
	assert.Negative(t, apple.Compare(banana))
	assert.Positive(t, banana.Compare(apple))
	assert.Negative(t, apple.Compare(twin), "ties fall back to the property name")
	assert.Zero(t, apple.Compare(apple))
}
