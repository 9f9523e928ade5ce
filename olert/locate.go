//go:build windows

package olert

import (
	"syscall"

	"github.com/olebind/olebind/olerr"
	"github.com/zzl/go-win32api/v2/win32"
	"golang.org/x/sys/windows/registry"
)

// LocateTypeLib finds the on-disk type library registered for target,
// which may be a ProgID, a literal CLSID string, or a type library
// display name.
func LocateTypeLib(target string) (string, error) {
	if clsid, err := ClassID(target); err == nil {
		if path, err := typeLibFromCLSID(clsid); err == nil {
			return path, nil
		}
	}
	return typeLibByName(target)
}

// typeLibFromCLSID reads the class's server path; the server binary
// carries the library as a resource.
func typeLibFromCLSID(clsid syscall.GUID) (string, error) {
	sClsid, _ := win32.GuidToStr(&clsid)
	key, err := registry.OpenKey(registry.CLASSES_ROOT,
		`CLSID\`+sClsid+`\InprocServer32`, registry.QUERY_VALUE)
	if err != nil {
		return "", olerr.NotFound("typelib", sClsid)
	}
	defer key.Close()

	path, valType, err := key.GetStringValue("")
	if err != nil || path == "" {
		return "", olerr.NotFound("typelib", sClsid)
	}
	if valType == registry.EXPAND_SZ {
		if expanded, err := registry.ExpandString(path); err == nil {
			path = expanded
		}
	}
	return path, nil
}

// typeLibByName scans HKCR\TypeLib for an entry whose display name is
// name, picks the highest registered version, and probes its language
// subkeys for a win64, win32 or win16 file, in that order.
func typeLibByName(name string) (string, error) {
	root, err := registry.OpenKey(registry.CLASSES_ROOT, "TypeLib",
		registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return "", olerr.NotFound("typelib", name)
	}
	defer root.Close()

	guids, err := root.ReadSubKeyNames(-1)
	if err != nil {
		return "", olerr.NotFound("typelib", name)
	}

	var bestPath, bestVer string
	for _, guid := range guids {
		libKey, err := registry.OpenKey(root, guid, registry.ENUMERATE_SUB_KEYS)
		if err != nil {
			continue
		}
		versions, err := libKey.ReadSubKeyNames(-1)
		libKey.Close()
		if err != nil {
			continue
		}
		for _, ver := range versions {
			verKey, err := registry.OpenKey(root, guid+`\`+ver, registry.QUERY_VALUE)
			if err != nil {
				continue
			}
			display, _, err := verKey.GetStringValue("")
			verKey.Close()
			if err != nil || display != name {
				continue
			}
			if bestVer != "" && !typeLibVersionLess(bestVer, ver) {
				continue
			}
			if path, err := typeLibPath(guid, ver); err == nil {
				bestVer, bestPath = ver, path
			}
		}
	}
	if bestPath == "" {
		return "", olerr.NotFound("typelib", name)
	}
	return bestPath, nil
}

func typeLibPath(guid, ver string) (string, error) {
	verKey, err := registry.OpenKey(registry.CLASSES_ROOT,
		`TypeLib\`+guid+`\`+ver, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return "", olerr.NotFound("typelib", guid)
	}
	defer verKey.Close()

	lcids, err := verKey.ReadSubKeyNames(-1)
	if err != nil {
		return "", olerr.NotFound("typelib", guid)
	}
	for _, lcid := range lcids {
		// FLAGS and HELPDIR live alongside the language subkeys; they
		// have no architecture children and fall out here naturally.
		for _, arch := range []string{"win64", "win32", "win16"} {
			key, err := registry.OpenKey(verKey, lcid+`\`+arch, registry.QUERY_VALUE)
			if err != nil {
				continue
			}
			path, valType, err := key.GetStringValue("")
			key.Close()
			if err != nil || path == "" {
				continue
			}
			if valType == registry.EXPAND_SZ {
				if expanded, err := registry.ExpandString(path); err == nil {
					path = expanded
				}
			}
			return path, nil
		}
	}
	return "", olerr.NotFound("typelib", guid+" "+ver)
}
