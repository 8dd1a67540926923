package dashboard

import (
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

// ThemeSelection carries the resolved color theme for a render.
type ThemeSelection struct {
	Name       string            `json:"name"`
	Dark       bool              `json:"dark"`
	Tokens     map[string]string `json:"tokens"`
	ChartTheme string            `json:"chart_theme"`
}

// SelectTheme returns the light or dark theme.
func SelectTheme(dark bool) *ThemeSelection {
	if dark {
		return &ThemeSelection{
			Name:       "dark",
			Dark:       true,
			ChartTheme: types.ThemeChalk,
			Tokens: map[string]string{
				"surface":       "#18181b",
				"surface-muted": "#000000",
				"border":        "#27272a",
				"text":          "#f4f4f5",
				"text-muted":    "#a1a1aa",
				"grid":          "#27272a",
				"accent":        "#2563eb",
			},
		}
	}
	return &ThemeSelection{
		Name:       "light",
		ChartTheme: types.ThemeWesteros,
		Tokens: map[string]string{
			"surface":       "#ffffff",
			"surface-muted": "#fafafa",
			"border":        "#e4e4e7",
			"text":          "#27272a",
			"text-muted":    "#71717a",
			"grid":          "#e4e4e7",
			"accent":        "#2563eb",
		},
	}
}

// CSSVariables normalizes token keys into CSS variable names.
func (theme *ThemeSelection) CSSVariables() map[string]string {
	if theme == nil || len(theme.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(theme.Tokens))
	for key, value := range theme.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variable map as a style string, sorted by name.
func (theme *ThemeSelection) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		value := vars[key]
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}
