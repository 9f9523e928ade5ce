package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgSlotReversesDeclarationOrder(t *testing.T) {
	declared := []string{"first", "second", "third"}
	marshaled := make([]string, len(declared))
	for i, a := range declared {
		marshaled[argSlot(len(declared), i)] = a
	}
	assert.Equal(t, []string{"third", "second", "first"}, marshaled)
}

func TestArgSlotSingle(t *testing.T) {
	assert.Equal(t, 0, argSlot(1, 0))
}

func TestNeedsPutDispid(t *testing.T) {
	assert.False(t, needsPutDispid(Method))
	assert.False(t, needsPutDispid(PropGet))
	assert.True(t, needsPutDispid(PropPut))
	assert.True(t, needsPutDispid(PropPutRef))
	assert.True(t, needsPutDispid(PropPut|Method))
}
