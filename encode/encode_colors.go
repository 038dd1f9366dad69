package encode

import (
	"github.com/fatih/color"
)

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[ColorAttr]func(string, ...any) string{},
	}
	colors.Map[FieldColor] = color.RGB(196, 96, 16).SprintfFunc()
	colors.Map[ValueColor] = color.RGB(128, 216, 236).SprintfFunc()
	colors.Map[SepColor] = color.RGB(255, 0, 196).SprintfFunc()
	return colors
}

func (c *Colors) Color(attr ColorAttr, s string) string {
	f, ok := c.Map[attr]
	if !ok {
		f = c.Default
	}
	return f("%s", s)
}

func colorDefault(f string, args ...any) string {
	if f == "%s" && len(args) == 1 {
		if s, ok := args[0].(string); ok {
			return s
		}
	}
	return f
}
