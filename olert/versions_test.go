package olert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeLibVersionLess(t *testing.T) {
	assert.True(t, typeLibVersionLess("1.0", "1.1"))
	assert.True(t, typeLibVersionLess("1.9", "2.0"))
	assert.False(t, typeLibVersionLess("2.0", "1.9"))
	assert.False(t, typeLibVersionLess("1.0", "1.0"))

	// Registry versions are hexadecimal.
	assert.True(t, typeLibVersionLess("9.0", "a.0"))
	assert.True(t, typeLibVersionLess("1.9", "1.a"))

	// Major-only keys behave as ".0".
	assert.True(t, typeLibVersionLess("1", "1.1"))

	// Unparseable keys sort below parseable ones.
	assert.True(t, typeLibVersionLess("FLAGS", "1.0"))
	assert.False(t, typeLibVersionLess("1.0", "HELPDIR"))
}
