package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/go-drift/propgrid/pkg/convert"
	griderrors "github.com/go-drift/propgrid/pkg/errors"
	"github.com/go-drift/propgrid/pkg/model"
)

// maxSuggestDistance is the largest edit distance offered as a suggestion.
const maxSuggestDistance = 3

func init() {
	RegisterCommand(&Command{
		Name:  "set",
		Short: "Commit property values and show the result",
		Long: `Assign one or more properties of the demo object and commit them.

Values are given as text and converted to each property's declared type.
A value that cannot be converted is rolled back and reported; the other
assignments are still committed. Property names match case-insensitively
and may also be given by display name.

Examples:
  propgrid set Volume=75
  propgrid set Mode=Live Channels=Left|Right|Sub
  propgrid set "Master volume=80"`,
		Usage: "propgrid set <name=value>...",
		Run:   runSet,
	})
}

// assignment is one name=value argument.
type assignment struct {
	name  string
	value string
}

func parseAssignments(args []string) ([]assignment, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("at least one name=value is required\n\nUsage: propgrid set <name=value>...")
	}
	out := make([]assignment, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q (want name=value)", arg)
		}
		out = append(out, assignment{name: name, value: value})
	}
	return out, nil
}

func runSet(args []string) error {
	assigns, err := parseAssignments(args)
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	var errs []error
	for _, a := range assigns {
		p, err := lookupProperty(s.grid.Source(), a.name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if p.IsReadOnly() {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), griderrors.ErrReadOnly))
			continue
		}
		p.SetValue(a.value)
		// Live sync commits inside SetValue, so a rollback leaves the
		// property clean and Commit below would not see it.
		if p.LiveSync() && rolledBack(p) {
			errs = append(errs, rollbackError(p))
		}
	}

	for _, name := range s.grid.Commit() {
		errs = append(errs, rollbackError(s.grid.Property(name)))
	}

	for _, c := range s.grid.Categories() {
		c.SetExpanded(true)
	}
	fmt.Fprint(stdout, renderRows(lines(s.rows), -1))

	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(stdout, errorStyle.Render("error: "+err.Error()))
		}
		return fmt.Errorf("%d of %d assignments failed", len(errs), len(assigns))
	}
	return nil
}

// rolledBack reports whether the last commit of p failed to convert.
func rolledBack(p *model.Property) bool {
	for _, err := range p.Errors() {
		var gerr *griderrors.GridError
		if griderrors.As(err, &gerr) && gerr.Kind == griderrors.KindConversion {
			return true
		}
	}
	return false
}

func rollbackError(p *model.Property) error {
	return fmt.Errorf("%s rolled back to %q: %w", p.Name(), convert.Format(p.Value(), p.Descriptor()), errors.Join(p.Errors()...))
}

// lookupProperty finds a property by name or display name. Unknown names
// produce an error naming the closest match.
func lookupProperty(src *model.Source, name string) (*model.Property, error) {
	if p := src.Property(name); p != nil {
		return p, nil
	}
	for _, p := range src.Properties() {
		if strings.EqualFold(p.Name(), name) || strings.EqualFold(p.DisplayName(), name) {
			return p, nil
		}
	}
	if best := suggest(src, name); best != "" {
		return nil, fmt.Errorf("unknown property %q (did you mean %q?)", name, best)
	}
	return nil, fmt.Errorf("unknown property %q", name)
}

func suggest(src *model.Source, name string) string {
	best, bestDist := "", maxSuggestDistance+1
	key := strings.ToLower(name)
	for _, p := range src.Properties() {
		if d := levenshtein.ComputeDistance(key, strings.ToLower(p.Name())); d < bestDist {
			best, bestDist = p.Name(), d
		}
	}
	return best
}
