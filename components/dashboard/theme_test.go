package dashboard

import (
	"strings"
	"testing"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
)

func TestSelectTheme(t *testing.T) {
	light := SelectTheme(false)
	dark := SelectTheme(true)

	assert.Equal(t, "light", light.Name)
	assert.Equal(t, types.ThemeWesteros, light.ChartTheme)
	assert.True(t, dark.Dark)
	assert.Equal(t, types.ThemeChalk, dark.ChartTheme)
	assert.Equal(t, "#18181b", dark.Tokens["surface"])
}

func TestThemeCSSVariablesInline(t *testing.T) {
	theme := &ThemeSelection{Tokens: map[string]string{"b": "2", "--a": "1", "": "x", "c": ""}}
	vars := theme.CSSVariables()
	assert.Equal(t, "1", vars["--a"])
	assert.Equal(t, "2", vars["--b"])
	assert.NotContains(t, vars, "--")

	assert.Equal(t, "--a: 1; --b: 2;", theme.CSSVariablesInline())

	var nilTheme *ThemeSelection
	assert.Empty(t, nilTheme.CSSVariablesInline())
	assert.True(t, strings.HasPrefix(SelectTheme(false).CSSVariablesInline(), "--accent:"))
}
