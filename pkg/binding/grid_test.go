package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/propgrid/pkg/editors"
	griderrors "github.com/go-drift/propgrid/pkg/errors"
	"github.com/go-drift/propgrid/pkg/layout"
	"github.com/go-drift/propgrid/pkg/meta"
	"github.com/go-drift/propgrid/pkg/model"
	"github.com/go-drift/propgrid/pkg/notify"
	"github.com/go-drift/propgrid/pkg/overlay"
)

type amp struct {
	notify.Notifier

	Name    string `grid:"category=General"`
	Enabled bool   `grid:"category=General,weight=10"`
	Volume  int    `grid:"category=Output"`
	Mode    int    `grid:"category=Output"`
	Serial  string `grid:"readonly"`
}

func (a *amp) SetVolume(v int) {
	if v == a.Volume {
		return
	}
	a.Volume = v
	a.NotifyPropertyChanged("Volume")
}

func ampRegistry() *meta.Registry {
	reg := meta.NewRegistry()
	meta.RegisterType[amp](reg, meta.TypeMetadata{
		Properties: map[string]meta.PropertyOptions{
			"Volume": {Range: &meta.Range{Min: 0, Max: 100, Step: 1}},
			"Mode": {Enum: meta.NewEnum("Mode",
				meta.EnumValue{Name: "Off", Value: 0},
				meta.EnumValue{Name: "On", Value: 1},
			)},
		},
		Categories: map[string]meta.CategoryOptions{
			"General": {SortWeight: 10},
		},
	})
	return reg
}

func newAmp() *amp {
	return &amp{Name: "A", Enabled: true, Volume: 50, Serial: "SN-1"}
}

func rowTexts(rows *layout.Rows) []string {
	var out []string
	for _, r := range rows.Rows() {
		cell := r.Name.(*layout.NameCell)
		if cell.Header {
			out = append(out, "["+cell.Text+"]")
			continue
		}
		out = append(out, cell.Text)
	}
	return out
}

func TestGridLayoutGrouped(t *testing.T) {
	rows := &layout.Rows{}
	g := NewGrid(rows, WithRegistry(ampRegistry()), WithGrouping(true))
	require.NoError(t, g.Bind(newAmp()))

	assert.Equal(t, []string{"[General]", "Enabled", "Name", "[Misc]", "Serial", "[Output]", "Mode", "Volume"}, rowTexts(rows))
	assert.Nil(t, rows.Row(0).Value)
	assert.Same(t, g.Surface("Enabled"), rows.Row(1).Value)
	assert.True(t, g.Surface("Enabled").IsMounted())
	assert.Len(t, g.Categories(), 3)
}

func TestGridLayoutFlat(t *testing.T) {
	rows := &layout.Rows{}
	g := NewGrid(rows, WithRegistry(ampRegistry()))
	require.NoError(t, g.Bind(newAmp()))

	assert.Equal(t, []string{"Enabled", "Mode", "Name", "Serial", "Volume"}, rowTexts(rows))

	g.SetGrouping(true)
	assert.True(t, g.Grouping())
	assert.Equal(t, 8, rows.Len())

	g.SetGrouping(false)
	assert.Equal(t, 5, rows.Len())
}

func TestGridCollapsedCategory(t *testing.T) {
	rows := &layout.Rows{}
	g := NewGrid(rows, WithRegistry(ampRegistry()), WithGrouping(true))
	require.NoError(t, g.Bind(newAmp()))

	var output *model.Category
	for _, c := range g.Categories() {
		if c.Name() == "Output" {
			output = c
		}
	}
	require.NotNil(t, output)

	output.SetExpanded(false)
	assert.Equal(t, []string{"[General]", "Enabled", "Name", "[Misc]", "Serial", "[Output]"}, rowTexts(rows))
	assert.False(t, g.Surface("Volume").IsMounted())

	output.SetExpanded(true)
	assert.Equal(t, 8, rows.Len())
	assert.True(t, g.Surface("Volume").IsMounted())
}

func TestGridEditorDrivesModel(t *testing.T) {
	obj := newAmp()
	g := NewGrid(nil, WithRegistry(ampRegistry()))
	require.NoError(t, g.Bind(obj))

	slider := g.Surface("Volume").Editor().(*editors.Slider)
	slider.SetPosition(70)
	assert.Equal(t, 70, g.Property("Volume").Value())
	assert.Equal(t, 50, obj.Volume, "without live sync edits wait for Commit")

	text := g.Surface("Name").Editor().(*editors.Text)
	text.SetText("B")

	assert.Empty(t, g.Commit())
	assert.Equal(t, 70, obj.Volume)
	assert.Equal(t, "B", obj.Name)
	assert.True(t, g.IsValid())
}

func TestGridLiveSync(t *testing.T) {
	obj := newAmp()
	g := NewGrid(nil, WithRegistry(ampRegistry()), WithLiveSync(true))
	require.NoError(t, g.Bind(obj))

	g.Surface("Enabled").Editor().(*editors.Toggle).Flip()
	assert.False(t, obj.Enabled)

	require.NoError(t, g.Surface("Mode").Editor().(*editors.Picker).Select("On"))
	assert.Equal(t, 1, obj.Mode)
}

func TestGridRollbackRefreshesEditor(t *testing.T) {
	obj := newAmp()
	g := NewGrid(nil, WithRegistry(ampRegistry()), WithLiveSync(true))
	require.NoError(t, g.Bind(obj))

	// A text override on a ranged property lets out-of-range input reach
	// the model.
	text := editors.NewText(g.Property("Volume").Descriptor())
	s := g.Surface("Volume")
	s.SetEditor(editors.NewHandle(text))
	text.SetText("150")

	assert.Equal(t, 50, obj.Volume)
	assert.Equal(t, "50", text.Text())
	assert.False(t, g.IsValid())
	assert.Contains(t, g.Errors(), "Volume")
}

func TestGridExternalChangeUpdatesEditor(t *testing.T) {
	obj := newAmp()
	g := NewGrid(nil, WithRegistry(ampRegistry()))
	require.NoError(t, g.Bind(obj))

	var events []model.Event
	g.AddListener(func(e model.Event) { events = append(events, e) })

	obj.SetVolume(20)
	assert.Equal(t, 20, g.Surface("Volume").Editor().Value())
	assert.NotEmpty(t, events)

	obj.Name = "Z"
	g.RefreshAll()
	assert.Equal(t, "Z", g.Surface("Name").Editor().Value())
}

func TestGridReadOnlyEditor(t *testing.T) {
	g := NewGrid(nil, WithRegistry(ampRegistry()))
	require.NoError(t, g.Bind(newAmp()))

	serial := g.Surface("Serial").Editor().(*editors.Text)
	assert.True(t, serial.IsReadOnly())

	name := g.Surface("Name").Editor().(*editors.Text)
	g.Property("Name").SetReadOnly(true)
	assert.True(t, name.IsReadOnly())
	g.Property("Name").SetReadOnly(false)
	assert.False(t, name.IsReadOnly())
}

func TestGridRebindDoesNotLeak(t *testing.T) {
	obj := newAmp()
	rows := &layout.Rows{}
	g := NewGrid(rows, WithRegistry(ampRegistry()))
	require.NoError(t, g.Bind(obj))
	first := g.Surface("Volume")

	require.NoError(t, g.Bind(obj))

	assert.Equal(t, 1, obj.ListenerCount())
	assert.Equal(t, 5, rows.Len())
	assert.Nil(t, first.Property(), "previous surfaces are detached")
	assert.NotSame(t, first, g.Surface("Volume"))

	g.Close()
	assert.Zero(t, obj.ListenerCount())
	assert.Zero(t, rows.Len())
	assert.Nil(t, g.Object())
}

type stubEditor struct {
	value    any
	disposed int
}

func (p *stubEditor) Value() any     { return p.value }
func (p *stubEditor) SetValue(v any) { p.value = v }
func (p *stubEditor) Dispose()       { p.disposed++ }

type misconfigured struct {
	Alpha string `grid:"editor=stubEditor"`
	Beta  string `grid:"editor=missing"`
}

func TestGridBindFailsOnEditorError(t *testing.T) {
	griderrors.SetHandler(&quietHandler{})
	defer griderrors.SetHandler(nil)

	var made []*stubEditor
	r := editors.NewResolver(editors.WithFactory("stubEditor", func(*model.Property) (any, error) {
		p := &stubEditor{}
		made = append(made, p)
		return p, nil
	}))
	rows := &layout.Rows{}
	g := NewGrid(rows, WithResolver(r), WithRegistry(meta.NewRegistry()))

	err := g.Bind(&misconfigured{})

	var eerr *griderrors.EditorError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, "Beta", eerr.Property)
	require.Len(t, made, 1)
	assert.Equal(t, 1, made[0].disposed, "partial surfaces are released")
	assert.Zero(t, rows.Len())
	assert.Nil(t, g.Surface("Alpha"))
	assert.Nil(t, g.Property("Alpha"))
}

func TestGridPickerPopup(t *testing.T) {
	var stack overlay.Stack
	r := editors.NewResolver(editors.WithOverlay(&stack))
	g := NewGrid(nil, WithRegistry(ampRegistry()), WithResolver(r))
	require.NoError(t, g.Bind(newAmp()))

	picker := g.Surface("Mode").Editor().(*editors.Picker)
	picker.Open()
	assert.Equal(t, 2, stack.Len())

	require.NoError(t, g.Bind(nil))
	assert.Zero(t, stack.Len(), "rebinding disposes open popups")
}

type quietHandler struct{}

func (quietHandler) HandleError(*griderrors.GridError)  {}
func (quietHandler) HandlePanic(*griderrors.PanicError) {}
