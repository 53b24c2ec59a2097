package formatter

/*
_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/attrib"
	"github.com/npillmayer/attrib/span"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// Console is a formatting driver for terminals with a fixed width font.
// It visualizes attributes with colors and text effects; nesting cannot be
// rendered faithfully, the most salient attribute of a run wins.
type Console struct {
	colors map[attrib.Kind]*color.Color
}

// NewConsole creates a console driver. colors maps attribute kinds to
// display colors and may cover just a subset of the kinds occurring in the
// rendered spans; passing nil selects a default palette.
func NewConsole(colors map[attrib.Kind]*color.Color) *Console {
	if colors == nil {
		colors = makeDefaultPalette()
	}
	return &Console{colors: colors}
}

func makeDefaultPalette() map[attrib.Kind]*color.Color {
	return map[attrib.Kind]*color.Color{
		attrib.Bold:       color.New(color.Bold),
		attrib.Italic:     color.New(color.Italic),
		attrib.Underline:  color.New(color.Underline),
		attrib.Strike:     color.New(color.CrossedOut),
		attrib.Link:       color.New(color.FgBlue, color.Underline),
		attrib.Color:      color.New(color.FgRed),
		attrib.Background: color.New(color.BgYellow),
	}
}

// precedence when a run carries more than one attribute
var salience = []attrib.Kind{
	attrib.Link, attrib.Bold, attrib.Italic, attrib.Underline,
	attrib.Strike, attrib.Color, attrib.Background,
}

// StyledText is called by the formatting driver to output a stretch of
// uniformly attributed text. (Part of interface Format)
func (c *Console) StyledText(s string, attrs attrib.Set, w io.Writer) {
	for _, k := range salience {
		if !attrs.Has(k) {
			continue
		}
		if col, ok := c.colors[k]; ok {
			col.Fprint(w, s)
			return
		}
	}
	io.WriteString(w, s)
}

// Preamble is called before a span is formatted. (Part of interface Format)
func (c *Console) Preamble(w io.Writer) {}

// Postamble is called after a span has been formatted. (Part of interface
// Format)
func (c *Console) Postamble(w io.Writer) {}

// Newline is called at the end of every formatted line. (Part of interface
// Format)
func (c *Console) Newline(w io.Writer) {
	w.Write([]byte{'\n'})
}

// Print outputs an attributed span to stdout.
//
// If config is nil, a heuristic will create one from the current
// terminal's properties (if stdout is interactive), with a width context
// derived from the user environment.
func Print(sp *span.Span, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
		config.Context = uax11.ContextFromEnvironment()
	}
	return Output(sp, os.Stdout, config, NewConsole(nil))
}

// defaultLineWidth is used whenever stdout is not an interactive
// terminal or its size cannot be determined.
const defaultLineWidth = 65

// ConfigFromTerminal creates a formatting Config from the current
// terminal. If stdout is interactive, the line width is derived from the
// terminal width, leaving a right margin on wide terminals and never
// dropping below a readable minimum.
func ConfigFromTerminal() *Config {
	config := &Config{LineWidth: defaultLineWidth}
	if !term.IsTerminal(0) {
		return config
	}
	if w, _, err := term.GetSize(0); err == nil {
		margin := 0
		switch {
		case w > defaultLineWidth:
			margin = 10
		case w > 30:
			margin = 5
		}
		if w-margin < 10 {
			config.LineWidth = 10
		} else {
			config.LineWidth = w - margin
		}
	}
	tracer().P("format", "console").Infof("terminal line width is %d en", config.LineWidth)
	return config
}
