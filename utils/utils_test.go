package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapUncapName(t *testing.T) {
	assert.Equal(t, "Widget", CapName("widget"))
	assert.Equal(t, "Widget", CapName("Widget"))
	assert.Equal(t, "", CapName(""))

	assert.Equal(t, "widget", UncapName("Widget"))
	assert.Equal(t, "", UncapName(""))
}

func TestSafeGoName(t *testing.T) {
	assert.Equal(t, "type_", SafeGoName("type"))
	assert.Equal(t, "range_", SafeGoName("range"))
	assert.Equal(t, "value", SafeGoName("value"))
}

func TestBuildGuidExpr(t *testing.T) {
	expr := BuildGuidExpr("{00020400-0000-0000-C000-000000000046}")
	assert.Contains(t, expr, "syscall.GUID{0x00020400, 0x0000, 0x0000,")
	assert.Contains(t, expr, "0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46")

	// Braces are optional.
	assert.Equal(t, expr, BuildGuidExpr("00020400-0000-0000-C000-000000000046"))

	assert.Equal(t, "syscall.GUID{}", BuildGuidExpr("not-a-guid"))
}

func TestStructSize(t *testing.T) {
	// int16 + int32 pads the first member to the second's alignment.
	got := StructSize(SizeInfo{2, 2}, SizeInfo{4, 4})
	assert.Equal(t, SizeInfo{TotalSize: 8, AlignSize: 4}, got)

	// Trailing padding rounds the total up to the widest alignment.
	got = StructSize(SizeInfo{8, 8}, SizeInfo{1, 1})
	assert.Equal(t, SizeInfo{TotalSize: 16, AlignSize: 8}, got)
}

func TestUnionSize(t *testing.T) {
	got := UnionSize(SizeInfo{4, 4}, SizeInfo{16, 8}, SizeInfo{1, 1})
	assert.Equal(t, SizeInfo{TotalSize: 16, AlignSize: 8}, got)
}
