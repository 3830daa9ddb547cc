package cmd

import "fmt"

func init() {
	RegisterCommand(&Command{
		Name:  "inspect",
		Short: "Show the properties of the demo object",
		Long: `Show every browsable property of the demo object with the editor
chosen for it.

Flags:
  --flat      List properties by name without category headers
  --grouped   Group properties under category headers`,
		Usage: "propgrid inspect [--flat|--grouped]",
		Run:   runInspect,
	})
}

func runInspect(args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	for _, arg := range args {
		switch arg {
		case "--flat":
			s.grid.SetGrouping(false)
		case "--grouped":
			s.grid.SetGrouping(true)
		default:
			return fmt.Errorf("unknown flag %q", arg)
		}
	}

	// Collapsed categories still list their properties here.
	for _, c := range s.grid.Categories() {
		c.SetExpanded(true)
	}
	fmt.Fprint(stdout, renderRows(lines(s.rows), -1))
	return nil
}
