package meta_test

import (
	"fmt"

	"github.com/go-drift/propgrid/pkg/meta"
)

type AudioSettings struct {
	Name    string
	Enabled bool
	Volume  int `grid:"category=Output,weight=10"`
}

// This example shows property discovery with registry metadata.
func ExampleDescribe() {
	reg := meta.NewRegistry()
	meta.RegisterType[AudioSettings](reg, meta.TypeMetadata{
		Properties: map[string]meta.PropertyOptions{
			"Volume": {DisplayName: "Master volume", Range: &meta.Range{Min: 0, Max: 100}},
		},
	})

	descs, _ := meta.Describe(&AudioSettings{Name: "A", Enabled: true, Volume: 50}, reg)
	for _, d := range descs {
		v, _ := d.Value()
		fmt.Printf("%s (%s) = %v\n", d.DisplayName, d.Type, v)
	}

	// Output:
	// Name (string) = A
	// Enabled (bool) = true
	// Master volume (int) = 50
}

// This example shows a bit-flag enumeration.
func ExampleEnumType_Split() {
	channels := meta.NewFlags("Channels",
		meta.EnumValue{Name: "Left", Value: 1},
		meta.EnumValue{Name: "Right", Value: 2},
		meta.EnumValue{Name: "Center", Value: 4},
	)
	v, _ := channels.Parse("Left|Center")
	fmt.Println(v, channels.Split(v), channels.Format(v))

	// Output:
	// 5 [Left Center] Left|Center
}
