package editors

import (
	"strings"
	"unicode/utf8"

	"github.com/go-drift/propgrid/pkg/convert"
	"github.com/go-drift/propgrid/pkg/meta"
)

// DefaultMaskChar hides the content of masked text editors.
const DefaultMaskChar = '•'

// Text edits any value through its text form. Value returns the raw text;
// the property converts it on commit.
type Text struct {
	base
	desc *meta.Descriptor
	text string

	masked bool
	mask   rune
}

// NewText creates an empty text editor formatting values for d. d may be nil.
func NewText(d *meta.Descriptor) *Text {
	return &Text{desc: d, mask: DefaultMaskChar}
}

// Value returns the text.
func (t *Text) Value() any { return t.text }

// SetValue replaces the text with the formatted form of v.
func (t *Text) SetValue(v any) { t.text = convert.Format(v, t.desc) }

// Text returns the unmasked text.
func (t *Text) Text() string { return t.text }

// SetText replaces the text as typing would and reports the change.
func (t *Text) SetText(s string) {
	if t.readOnly || s == t.text {
		return
	}
	t.text = s
	t.emit(s)
}

// Commit reports the current text again, as pressing enter would.
func (t *Text) Commit() {
	if t.readOnly {
		return
	}
	t.emit(t.text)
}

// SetMasked hides or shows the text in Display.
func (t *Text) SetMasked(on bool) { t.masked = on }

// IsMasked reports whether Display hides the text.
func (t *Text) IsMasked() bool { return t.masked }

// SetMaskChar replaces the masking character. Zero restores the default.
func (t *Text) SetMaskChar(r rune) {
	if r == 0 {
		r = DefaultMaskChar
	}
	t.mask = r
}

// MaskChar returns the masking character.
func (t *Text) MaskChar() rune { return t.mask }

// Display returns the text as it should be shown.
func (t *Text) Display() string {
	if !t.masked {
		return t.text
	}
	return strings.Repeat(string(t.mask), utf8.RuneCountInString(t.text))
}
