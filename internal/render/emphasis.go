package render

import "github.com/fatih/color"

// Role is what a piece of text means in the rendered entry. Each Emphasis
// decides how a role looks.
type Role int

const (
	RoleHeading Role = iota
	RoleLabel
	RoleStrong
	RoleItalic
)

type Emphasis interface {
	Apply(role Role, text string) string
}

// ColorEmphasis styles roles with ANSI escape codes.
type ColorEmphasis struct {
	styles map[Role]*color.Color
}

// NewColorEmphasis always emits escape codes, even when stdout is not a
// terminal. Use PlainEmphasis to turn styling off.
func NewColorEmphasis() *ColorEmphasis {
	styles := map[Role]*color.Color{
		RoleHeading: color.New(color.Bold),
		RoleLabel:   color.New(color.Bold, color.FgYellow, color.BgBlack),
		RoleStrong:  color.New(color.FgHiGreen, color.Underline),
		RoleItalic:  color.New(color.Italic),
	}
	for _, style := range styles {
		style.EnableColor()
	}
	return &ColorEmphasis{styles: styles}
}

func (e *ColorEmphasis) Apply(role Role, text string) string {
	style, ok := e.styles[role]
	if !ok {
		return text
	}
	return style.Sprint(text)
}

type PlainEmphasis struct{}

func (PlainEmphasis) Apply(_ Role, text string) string {
	return text
}
