//go:build windows

package typelib

import (
	"testing"

	"github.com/olebind/olebind/typedesc"
	"github.com/stretchr/testify/assert"
	"github.com/zzl/go-win32api/v2/win32"
)

func TestDecodeDirFlagBits(t *testing.T) {
	assert.Equal(t, typedesc.DirNone, decodeDir(0))
	assert.Equal(t, typedesc.DirIn, decodeDir(uint32(win32.IDLFLAG_FIN)))
	assert.Equal(t, typedesc.DirOut, decodeDir(uint32(win32.IDLFLAG_FOUT)))
	assert.Equal(t, typedesc.DirIn|typedesc.DirOut,
		decodeDir(uint32(win32.IDLFLAG_FIN)|uint32(win32.IDLFLAG_FOUT)))
	assert.Equal(t, typedesc.DirOut|typedesc.DirRetval,
		decodeDir(uint32(win32.IDLFLAG_FOUT)|uint32(win32.IDLFLAG_FRETVAL)))

	// LCID is not a direction.
	assert.Equal(t, typedesc.DirNone, decodeDir(uint32(win32.IDLFLAG_FLCID)))
}
