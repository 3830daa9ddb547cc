package model

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	griderrors "github.com/go-drift/propgrid/pkg/errors"
	"github.com/go-drift/propgrid/pkg/meta"
)

func names(props []*Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.Name()
	}
	return out
}

func TestBindOrdersProperties(t *testing.T) {
	src, _ := bindDevice(t)
	assert.Equal(t, []string{"Enabled", "Name", "Serial", "Volume"}, names(src.Properties()))
	assert.Same(t, src.Property("Name"), src.Properties()[1])
	assert.Nil(t, src.Property("Missing"))
}

func TestBindNil(t *testing.T) {
	src := NewSource()
	src.Bind(nil)
	assert.Zero(t, src.Len())
	assert.True(t, src.IsValid())
	assert.Empty(t, src.Errors())

	src.Bind((*device)(nil))
	assert.Zero(t, src.Len())
	assert.True(t, src.IsValid())
}

func TestIdempotentRebind(t *testing.T) {
	src, dev := bindDevice(t)
	first := src.Properties()

	rebinds := 0
	src.AddListener(func(e Event) {
		if e.Kind == EventRebound {
			rebinds++
		}
	})
	src.Bind(dev)
	second := src.Properties()

	assert.Equal(t, 1, rebinds)
	require.Equal(t, names(first), names(second))
	for i := range first {
		assert.Equal(t, first[i].Descriptor().Type, second[i].Descriptor().Type)
		assert.Equal(t, first[i].Value(), second[i].Value())
		assert.NotSame(t, first[i], second[i])
	}
	assert.Equal(t, 1, dev.ListenerCount(), "rebinding must not leak subscriptions")
}

func TestRebindReleasesPreviousObject(t *testing.T) {
	src, first := bindDevice(t)
	second := &device{Name: "B"}
	src.Bind(second)

	assert.Zero(t, first.ListenerCount())
	assert.Equal(t, 1, second.ListenerCount())
	assert.Equal(t, "B", src.Property("Name").Value())

	src.Close()
	assert.Zero(t, second.ListenerCount())
	assert.Zero(t, src.Len())
	assert.Nil(t, src.Object())
}

func TestObjectNotificationRefreshesProperty(t *testing.T) {
	src, dev := bindDevice(t)

	var events []Event
	src.AddListener(func(e Event) { events = append(events, e) })

	dev.SetVolume(20)

	p := src.Property("Volume")
	assert.Equal(t, 20, p.Value())
	assert.Equal(t, 20, p.OriginalValue())
	assert.Contains(t, events, Event{Kind: EventPropertyChanged, Property: "Volume", Field: FieldValue})
	assert.Equal(t, Event{Kind: EventPropertyChanged, Property: "Volume"}, events[len(events)-1])
}

type shape []meta.Accessor

func (s shape) InspectProperties() []meta.Accessor { return s }

type recorder struct{ errs []*griderrors.GridError }

func (r *recorder) HandleError(err *griderrors.GridError) { r.errs = append(r.errs, err) }
func (r *recorder) HandlePanic(*griderrors.PanicError)    {}

func TestBindExcludesUnreadableProperties(t *testing.T) {
	rec := &recorder{}
	griderrors.SetHandler(rec)
	defer griderrors.SetHandler(nil)

	obj := shape{
		{Name: "Ok", Type: reflect.TypeFor[int](), Get: func() (any, error) { return 1, nil }},
		{Name: "Broken", Type: reflect.TypeFor[int](), Get: func() (any, error) { return nil, griderrors.New("offline") }},
		{Name: "Panics", Type: reflect.TypeFor[int](), Get: func() (any, error) { panic("boom") }},
		{Name: "Hidden", Type: reflect.TypeFor[int](), Get: func() (any, error) { return 2, nil }, Options: meta.PropertyOptions{Hidden: true}},
	}
	src := NewSource()
	src.Bind(obj)

	assert.Equal(t, []string{"Ok"}, names(src.Properties()))
	require.Len(t, rec.errs, 2)
	assert.Equal(t, griderrors.KindEnumeration, rec.errs[0].Kind)
	assert.Equal(t, "Broken", rec.errs[0].Property)
	assert.Equal(t, "Panics", rec.errs[1].Property)
	assert.True(t, src.IsReadOnly())
}

func TestSourceCommit(t *testing.T) {
	src, dev := bindDevice(t)
	src.Property("Name").SetValue("Q")
	src.Property("Volume").SetValue(400)
	src.Property("Enabled").SetValue("nope")

	failed := src.Commit()

	assert.ElementsMatch(t, []string{"Volume", "Enabled"}, failed)
	assert.Equal(t, "Q", dev.Name)
	assert.Equal(t, 50, dev.Volume)
	assert.True(t, dev.Enabled)
	assert.Len(t, src.Errors(), 2)
	assert.False(t, src.IsReadOnly())
}

func TestSourceRefreshAll(t *testing.T) {
	src, dev := bindDevice(t)
	dev.Name = "C"
	dev.Enabled = false

	src.RefreshAll()

	assert.Equal(t, "C", src.Property("Name").Value())
	assert.Equal(t, false, src.Property("Enabled").Value())
}

func TestSourceSetLiveSync(t *testing.T) {
	src, dev := bindDevice(t)
	src.SetLiveSync(true)

	src.Property("Name").SetValue("Live")
	assert.Equal(t, "Live", dev.Name)
}
