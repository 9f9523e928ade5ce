package utils

import (
	"fmt"
	"os"
	"strings"
	"unsafe"
)

const PtrSize = int(unsafe.Sizeof(uintptr(0)))

type SizeInfo struct {
	TotalSize int
	AlignSize int
}

// StructSize lays out fields sequentially with natural alignment and
// returns the padded total size and the largest member alignment.
func StructSize(fields ...SizeInfo) SizeInfo {
	var offset, maxAlign int
	for _, f := range fields {
		align := f.AlignSize
		if align == 0 {
			align = f.TotalSize
		}
		if align == 0 {
			continue
		}
		if rem := offset % align; rem != 0 {
			offset += align - rem
		}
		offset += f.TotalSize
		if align > maxAlign {
			maxAlign = align
		}
	}
	if maxAlign > 0 {
		if rem := offset % maxAlign; rem != 0 {
			offset += maxAlign - rem
		}
	}
	return SizeInfo{TotalSize: offset, AlignSize: maxAlign}
}

// UnionSize returns the storage of the widest member and the largest
// member alignment. Some members may be smaller than the union itself.
func UnionSize(fields ...SizeInfo) SizeInfo {
	var maxSize, maxAlign int
	for _, f := range fields {
		align := f.AlignSize
		if align == 0 {
			align = f.TotalSize
		}
		if f.TotalSize > maxSize {
			maxSize = f.TotalSize
		}
		if align > maxAlign {
			maxAlign = align
		}
	}
	return SizeInfo{TotalSize: maxSize, AlignSize: maxAlign}
}

func FileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

func DirExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func CapName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func UncapName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true,
	"continue": true, "default": true, "defer": true, "else": true,
	"fallthrough": true, "for": true, "func": true, "go": true,
	"goto": true, "if": true, "import": true, "interface": true,
	"map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true,
	"var": true,
}

func SafeGoName(name string) string {
	if goKeywords[name] {
		return name + "_"
	}
	return name
}

// BuildGuidExpr turns "{xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx}" (braces
// optional) into a syscall.GUID composite literal.
func BuildGuidExpr(s string) string {
	s = strings.Trim(s, "{}")
	parts := strings.Split(s, "-")
	if len(parts) != 5 {
		return "syscall.GUID{}"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "syscall.GUID{0x%s, 0x%s, 0x%s,\n\t[8]byte{", parts[0], parts[1], parts[2])
	tail := parts[3] + parts[4]
	for n := 0; n < 8; n++ {
		if n > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "0x%s", tail[n*2:n*2+2])
	}
	b.WriteString("}}")
	return b.String()
}
