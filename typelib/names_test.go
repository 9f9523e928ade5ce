package typelib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamNamesDropsMemberName(t *testing.T) {
	// Slot 0 is the member's own name, not a parameter.
	names := paramNames([]string{"Navigate", "URL", "Flags"}, 2)
	assert.Equal(t, []string{"URL", "Flags"}, names)
}

func TestParamNamesPadsMissingWithRhs(t *testing.T) {
	// Property setters commonly omit the value parameter's name.
	names := paramNames([]string{"Visible"}, 1)
	assert.Equal(t, []string{"rhs"}, names)

	names = paramNames([]string{"Range", "Cell1"}, 2)
	assert.Equal(t, []string{"Cell1", "rhs"}, names)
}

func TestParamNamesEmpty(t *testing.T) {
	assert.Empty(t, paramNames([]string{"Quit"}, 0))
}

func TestEventMatch(t *testing.T) {
	sources := []sourceView{
		{Name: "DWebBrowserEvents2", Methods: []string{"NavigateComplete2", "DocumentComplete"}},
		{Name: "OtherEvents", Methods: []string{"Changed"}},
	}

	assert.True(t, eventMatch("DocumentComplete", "DWebBrowserEvents2", sources))

	// The owning interface must itself be a source entry.
	assert.False(t, eventMatch("DocumentComplete", "IWebBrowser2", sources))

	// Name must match within the matching source entry.
	assert.False(t, eventMatch("Changed", "DWebBrowserEvents2", sources))
	assert.True(t, eventMatch("Changed", "OtherEvents", sources))

	assert.False(t, eventMatch("Anything", "Anywhere", nil))
}
