//go:build windows

package codegen

import (
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/olebind/olebind/typedesc"
	"github.com/olebind/olebind/typelib"
	"github.com/olebind/olebind/utils"
	"github.com/zzl/go-win32api/v2/win32"
)

// BuildResult tallies what a generation run substituted or skipped.
type BuildResult struct {
	MissingTypes          int
	TypesNotFound         int
	SkippedDispInterfaces int
	SkippedDualDispHalves int
}

func (this *BuildResult) Summary() string {
	return strconv.Itoa(this.MissingTypes) + " missing types, " +
		strconv.Itoa(this.TypesNotFound) + " types not found, " +
		strconv.Itoa(this.SkippedDispInterfaces) + " dispinterfaces skipped, " +
		strconv.Itoa(this.SkippedDualDispHalves) + " dual dispinterface halves skipped"
}

// Generator emits one Go package of bindings from a loaded type
// library. Types the library pulls in from other libraries resolve
// through RefLibMap, keyed by the import path of the package their
// bindings were generated into.
type Generator struct {
	TypeLib    *typelib.TypeLib
	RefLibMap  map[string]*typelib.TypeLib
	OutputPath string

	// EmitDispInterfaces turns on wrapper emission for pure
	// dispinterfaces. Dual interfaces always emit their vtable half
	// only.
	EmitDispInterfaces bool

	result  BuildResult
	codeMap map[string]string
	emitted map[string]bool

	ownClassSet     map[string]bool
	refClassMap     map[string]string //name:pkg
	usedRefClassMap map[string]string
}

// Generate walks the library in record index order and writes the
// binding files. A record that fails to decode is counted and skipped;
// only filesystem trouble aborts the run.
func (this *Generator) Generate() (*BuildResult, error) {
	this.prepareRefInfo()
	this.prepareOwnInfo()

	this.OutputPath = strings.ReplaceAll(this.OutputPath, "\\", "/")
	this.cleanOutputDir()

	this.codeMap = make(map[string]string)
	this.emitted = make(map[string]bool)
	for _, r := range this.TypeLib.Records() {
		if r.Err != nil {
			this.result.TypesNotFound++
			continue
		}
		this.genType(r.Info)
		r.Info.Dispose()
	}

	if err := this.writeCodes(); err != nil {
		return nil, err
	}
	return &this.result, nil
}

func isWin32Type(typeName string) bool {
	switch typeName {
	case "IUnknown", "ISequentialStream", "IStream", "IDispatch",
		"DISPPARAMS", "EXCEPINFO":
		return true
	}
	return false
}

func (this *Generator) prepareOwnInfo() {
	this.ownClassSet = make(map[string]bool)
	for _, r := range this.TypeLib.Records() {
		if r.Err != nil {
			continue
		}
		ti := r.Info
		switch ti.Kind() {
		case typelib.KindClass, typelib.KindInterface, typelib.KindDispatch:
			if !isWin32Type(ti.Name()) {
				this.ownClassSet[utils.CapName(ti.Name())] = true
			}
		}
		ti.Dispose()
	}
}

func (this *Generator) prepareRefInfo() {
	this.refClassMap = make(map[string]string)
	this.usedRefClassMap = make(map[string]string)

	for pkg, tlb := range this.RefLibMap {
		for _, r := range tlb.Records() {
			if r.Err != nil {
				continue
			}
			ti := r.Info
			switch ti.Kind() {
			case typelib.KindClass, typelib.KindInterface, typelib.KindDispatch:
				name := utils.CapName(ti.Name())
				if !this.ownClassSet[name] {
					this.refClassMap[name] = pkg
				}
			}
			ti.Dispose()
		}
	}
}

func (this *Generator) writeCodes() error {
	pkgName := path.Base(this.OutputPath)
	for name, code := range this.codeMap {
		code := "package " + pkgName + "\n\n" + genImports(code) + code
		filePath := path.Join(this.OutputPath, name+".go")
		if err := os.WriteFile(filePath, []byte(code), 0644); err != nil {
			return err
		}
	}
	refsCode := this.genRefsCode()
	if refsCode != "" {
		filePath := path.Join(this.OutputPath, "refs.go")
		if err := os.WriteFile(filePath, []byte(refsCode), 0644); err != nil {
			return err
		}
	}
	return nil
}

func (this *Generator) genRefsCode() string {
	if len(this.usedRefClassMap) == 0 {
		return ""
	}
	pkgSet := make(map[string]bool)     //pkg
	classMap := make(map[string]string) //class:pkg_last
	for className, pkg := range this.usedRefClassMap {
		pkgSet[pkg] = true
		pos := strings.LastIndexByte(pkg, '/')
		pkgLast := pkg
		if pos != -1 {
			pkgLast = pkg[pos+1:]
		}
		classMap[className] = pkgLast
	}
	var code string
	pkgName := path.Base(this.OutputPath)
	code += "package " + pkgName + "\n\n"
	code += "import (\n"
	for pkg := range pkgSet {
		code += "\t\"" + pkg + "\"\n"
	}
	code += ")\n\n"

	for className, pkgLast := range classMap {
		code += "type " + className + " = " + pkgLast + "." + className + "\n"
		if !isWin32Type(className) {
			code += "var New" + className + " = " + pkgLast + ".New" + className + "\n\n"
		}
	}
	return code
}

func (this *Generator) cleanOutputDir() {
	des, _ := os.ReadDir(this.OutputPath)
	for _, de := range des {
		c := de.Name()[0]
		if c < '0' || c > '9' {
			filePath := path.Join(this.OutputPath, de.Name())
			os.Remove(filePath)
		}
	}
}

func genImports(code string) string {
	var imports string
	if strings.Contains(code, "win32.") {
		imports += "\t\"github.com/zzl/go-win32api/v2/win32\"\n"
	}
	if strings.Contains(code, "com.") {
		imports += "\t\"github.com/zzl/go-com/com\"\n"
	}
	if strings.Contains(code, "ole.") {
		imports += "\t\"github.com/zzl/go-com/ole\"\n"
	}
	if strings.Contains(code, "syscall.") {
		imports += "\t\"syscall\"\n"
	}
	if strings.Contains(code, "unsafe.") {
		imports += "\t\"unsafe\"\n"
	}
	if strings.Contains(code, "time.Time") {
		imports += "\t\"time\"\n"
	}
	if imports != "" {
		imports = "import (\n" + imports + ")\n\n"
	}
	return imports
}

func (this *Generator) genType(ti *typelib.TypeInfo) {
	switch ti.Kind() {
	case typelib.KindEnum:
		this.genEnum(ti)
	case typelib.KindRecord:
		this.genStruct(ti)
	case typelib.KindUnion:
		this.genUnion(ti)
	case typelib.KindAlias:
		this.genAlias(ti)
	case typelib.KindModule:
		this.genModule(ti)
	case typelib.KindInterface:
		this.genInterface(ti)
	case typelib.KindDispatch:
		this.genDispInterface(ti)
	case typelib.KindClass:
		this.genCoClass(ti)
	}
}

// render formats one descriptor, folding unresolvable references into
// the missing-type tally instead of failing the record.
func (this *Generator) render(ti *typelib.TypeInfo, td *typedesc.TypeDesc,
	dir typedesc.Dir) string {

	r := typedesc.Renderer{Resolve: this.resolveFor(ti)}
	out := r.Render(td, dir)
	this.result.MissingTypes += r.MissingTypes
	return out.Go
}

func (this *Generator) resolveFor(ti *typelib.TypeInfo) func(uint32) (string, error) {
	base := ti.Resolver()
	return func(href uint32) (string, error) {
		name, err := base(href)
		if err != nil {
			return "", err
		}
		if name == "GUID" {
			return "syscall.GUID", nil
		}
		name = utils.CapName(name)
		if isWin32Type(name) {
			return "win32." + name, nil
		}
		if pkg, ok := this.refClassMap[name]; ok {
			this.usedRefClassMap[name] = pkg
		}
		return name, nil
	}
}

func (this *Generator) genAlias(ti *typelib.TypeInfo) {
	if ti.Name() == "GUID" {
		return
	}
	target := this.render(ti, ti.AliasType(), typedesc.DirNone)
	if target == "" {
		return
	}
	code := this.codeMap["types"]
	code += "// alias " + ti.Name() + "\n"
	code += "type " + utils.CapName(ti.Name()) + " = " + target + "\n\n"
	this.codeMap["types"] = code
}

func (this *Generator) genEnum(ti *typelib.TypeInfo) {
	var names []string
	var values []string
	for _, vr := range ti.Variables() {
		if vr.Err != nil || !vr.Var.Constant {
			continue
		}
		names = append(names, vr.Var.Name)
		values = append(values, constExpr(vr.Var.Value))
	}
	members := stripCommonPrefix(names)

	code := this.codeMap["enums"]
	code += "// enum " + ti.Name() + "\n"
	code += "var " + utils.CapName(ti.Name()) + " = struct {\n"
	for _, m := range members {
		code += "\t" + utils.CapName(m) + " int32\n"
	}
	code += "}{\n"
	for n, m := range members {
		code += "\t" + utils.CapName(m) + ": " + values[n] + ",\n"
	}
	code += "}\n\n"
	this.codeMap["enums"] = code
}

func (this *Generator) genStruct(ti *typelib.TypeInfo) {
	code := this.codeMap["types"]
	code += "// struct " + ti.Name() + "\n"
	code += "type " + utils.CapName(ti.Name()) + " struct {\n"
	for _, vr := range ti.Variables() {
		if vr.Err != nil {
			continue
		}
		fType := this.render(ti, vr.Var.Type, typedesc.DirNone)
		code += "\t" + utils.CapName(vr.Var.Name) + " " + fType + "\n"
	}
	code += "}\n\n"
	this.codeMap["types"] = code
}

func (this *Generator) genUnion(ti *typelib.TypeInfo) {
	if strings.Contains(ti.Name(), "MIDL_") {
		return
	}
	name := utils.CapName(ti.Name())
	elemType, elemCount := unionBacking(ti.InstanceSize(), ti.Alignment())

	code := this.codeMap["types"]
	code += "// union " + ti.Name() + "\n"
	code += "type " + name + " struct {\n"
	code += "\tData [" + strconv.Itoa(elemCount) + "]" + elemType + "\n"
	code += "}\n\n"

	for _, vr := range ti.Variables() {
		if vr.Err != nil {
			continue
		}
		mName := utils.CapName(vr.Var.Name)
		mType := this.render(ti, vr.Var.Type, typedesc.DirNone)
		code += "func (this *" + name + ") " + mName + "() *" + mType + " {\n"
		code += "\treturn (*" + mType + ")(unsafe.Pointer(this))\n"
		code += "}\n\n"
		code += "func (this *" + name + ") " + mName + "Val() " + mType + " {\n"
		code += "\treturn *(*" + mType + ")(unsafe.Pointer(this))\n"
		code += "}\n\n"
	}
	this.codeMap["types"] = code
}

func (this *Generator) genModule(ti *typelib.TypeInfo) {
	var body string
	for _, vr := range ti.Variables() {
		if vr.Err != nil || !vr.Var.Constant {
			continue
		}
		body += "\t" + utils.CapName(vr.Var.Name) + " = " + constExpr(vr.Var.Value) + "\n"
	}
	if body == "" {
		return
	}
	code := this.codeMap["consts"]
	code += "// module " + ti.Name() + "\n"
	code += "const (\n" + body + ")\n\n"
	this.codeMap["consts"] = code
}

func (this *Generator) genInterface(ti *typelib.TypeInfo) {
	className := utils.CapName(ti.Name())
	if isWin32Type(className) || this.emitted[className] {
		return
	}
	this.emitted[className] = true
	code := this.codeMap[className]

	guid := ti.Guid()
	sIid, _ := win32.GuidToStr(&guid)
	code += "// " + sIid + "\n"
	code += "var IID_" + className + " = " + utils.BuildGuidExpr(sIid) + "\n\n"

	superClassName := "win32.IUnknown"
	superVtblSize := 3 * utils.PtrSize
	if ti.ImplCount() > 0 {
		super, err := ti.ImplInfo(0)
		if err != nil {
			this.result.TypesNotFound++
			return
		}
		superClassName = utils.CapName(super.Name())
		superVtblSize = super.VtblSize()
		if isWin32Type(superClassName) {
			superClassName = "win32." + superClassName
		}
		super.Dispose()
	}

	code += "type " + className + " struct {\n"
	code += "\t" + superClassName + "\n"
	code += "}\n\n"

	code += "func New" + className + "(pUnk *win32.IUnknown, addRef bool, scoped bool) *" + className + " {\n"
	code += "\tp := (*" + className + ")(unsafe.Pointer(pUnk))\n"
	code += "\tif addRef {\n"
	code += "\t\tpUnk.AddRef()\n"
	code += "\t}\n"
	code += "\tif scoped {\n"
	code += "\t\tcom.AddToScope(p)\n"
	code += "\t}\n"
	code += "\treturn p\n"
	code += "}\n\n"

	code += "func (this *" + className + ") IID() *syscall.GUID {\n"
	code += "\treturn &IID_" + className + "\n"
	code += "}\n\n"

	var methods []*typelib.MethodData
	for _, r := range ti.Methods(typelib.InvokeAny) {
		if r.Err != nil {
			continue
		}
		// Offsets below the super's vtable size are inherited slots.
		if r.Method.VtblOffset() < superVtblSize {
			continue
		}
		methods = append(methods, r.Method)
	}

	setMethods := make(map[string]bool)
	for _, m := range methods {
		if m.InvokeKind()&(typelib.InvokePut|typelib.InvokePutRef) != 0 {
			setMethods["Set"+utils.CapName(m.Name())] = true
		}
	}

	for _, m := range methods {
		slot := m.VtblOffset() / utils.PtrSize
		var fName string
		switch {
		case m.InvokeKind()&typelib.InvokeGet != 0:
			fName = "Get" + utils.CapName(m.Name())
		case m.InvokeKind()&(typelib.InvokePut|typelib.InvokePutRef) != 0:
			fName = "Set" + utils.CapName(m.Name())
		default:
			fName = utils.CapName(m.Name())
			if setMethods[fName] {
				fName += "_"
			}
		}
		if fName == "QueryInterface" {
			fName += "_"
		}
		code += this.genFunc(ti, className, fName, slot, m)
	}
	this.codeMap[className] = code
}

func (this *Generator) genFunc(ti *typelib.TypeInfo, className string,
	fName string, slot int, m *typelib.MethodData) string {

	goReturnType := this.render(ti, m.ReturnType(), typedesc.DirNone)

	code := "func (this *" + className + ") " + fName + "("
	var pNames []string
	var pTypes []string
	for n, p := range m.Params() {
		if n > 0 {
			code += ", "
		}
		pName := utils.SafeGoName(utils.UncapName(p.Name))
		pType := this.render(ti, p.Type, p.Dir)
		pNames = append(pNames, pName)
		pTypes = append(pTypes, pType)
		code += pName + " " + pType
	}
	code += ") " + goReturnType + " {\n"

	code += "\taddr := (*this.LpVtbl)[" + strconv.Itoa(slot) + "]\n"
	code += "\t"
	if goReturnType != "" {
		code += "ret, _, _ :="
	} else {
		code += "_, _, _ ="
	}
	code += " syscall.SyscallN(addr, uintptr(unsafe.Pointer(this))"
	for n, pName := range pNames {
		code += ", " + this.marshalArg(ti, m.Params()[n].Type, pTypes[n], pName)
	}
	code += ")\n"
	if goReturnType != "" {
		code += "\t" + this.genReturnCode(ti, m.ReturnType(), goReturnType) + "\n"
	}
	code += "}\n\n"
	return code
}

// marshalArg renders the SyscallN argument expression for one
// parameter.
func (this *Generator) marshalArg(ti *typelib.TypeInfo,
	td *typedesc.TypeDesc, pType string, pName string) string {

	if pType == "uintptr" {
		return pName
	}
	if pType == "unsafe.Pointer" || pType[0] == '*' {
		return "uintptr(unsafe.Pointer(" + pName + "))"
	}
	if pType[0] == '[' {
		return "uintptr(unsafe.Pointer(&" + pName + "))"
	}
	if isStruct, big := this.valueLayout(ti, td); isStruct {
		if big {
			return "uintptr(unsafe.Pointer(&" + pName + "))"
		}
		return "*(*uintptr)(unsafe.Pointer(&" + pName + "))"
	}
	return "uintptr(" + pName + ")"
}

func (this *Generator) genReturnCode(ti *typelib.TypeInfo,
	td *typedesc.TypeDesc, goType string) string {

	switch goType {
	case "uintptr":
		return "return ret"
	case "unsafe.Pointer":
		return "return unsafe.Pointer(ret)"
	}
	if goType[0] == '*' {
		return "return (" + goType + ")(unsafe.Pointer(ret))"
	}
	if isStruct, _ := this.valueLayout(ti, td); isStruct {
		return "return *(*" + goType + ")(unsafe.Pointer(ret))"
	}
	return "return " + goType + "(ret)"
}

// valueLayout reports whether a by-value descriptor is a struct, and
// whether it is wider than a register.
func (this *Generator) valueLayout(ti *typelib.TypeInfo,
	td *typedesc.TypeDesc) (isStruct bool, big bool) {

	switch td.VT {
	case typedesc.VT_VARIANT, typedesc.VT_DECIMAL:
		return true, true
	case typedesc.VT_CY:
		return true, 8 > utils.PtrSize
	case typedesc.VT_USERDEFINED:
		ref, err := ti.RefTypeInfo(td.HRef)
		if err != nil {
			return false, false
		}
		defer ref.Dispose()
		switch ref.Kind() {
		case typelib.KindRecord, typelib.KindUnion:
			return true, ref.InstanceSize() > utils.PtrSize
		case typelib.KindAlias:
			return this.valueLayout(ref, ref.AliasType())
		}
	}
	return false, false
}

func (this *Generator) genDispInterface(ti *typelib.TypeInfo) {
	className := utils.CapName(ti.Name())
	if isWin32Type(className) {
		return
	}

	// A dual interface emits its vtable half only; the late-bound half
	// is redundant with it.
	if ti.Flags().Dual {
		this.result.SkippedDualDispHalves++
		companion, err := ti.CompanionInterface()
		if err == nil && companion != nil {
			this.genInterface(companion)
			companion.Dispose()
		}
		return
	}
	if !this.EmitDispInterfaces {
		this.result.SkippedDispInterfaces++
		return
	}
	if this.emitted[className] {
		return
	}
	this.emitted[className] = true
	code := this.codeMap[className]

	guid := ti.Guid()
	sIid, _ := win32.GuidToStr(&guid)
	code += "// " + sIid + "\n"
	code += "var IID_" + className + " = " + utils.BuildGuidExpr(sIid) + "\n\n"

	code += "type " + className + " struct {\n"
	code += "\tole.OleClient\n"
	code += "}\n\n"

	code += "func New" + className + "(pDisp *win32.IDispatch, addRef bool, scoped bool) *" + className + " {\n"
	code += "\tp := &" + className + "{ole.OleClient{pDisp}}\n"
	code += "\tif addRef {\n"
	code += "\t\tpDisp.AddRef()\n"
	code += "\t}\n"
	code += "\tif scoped {\n"
	code += "\t\tcom.AddToScope(p)\n"
	code += "\t}\n"
	code += "\treturn p\n"
	code += "}\n\n"

	code += "func " + className + "FromVar(v ole.Variant) *" + className + " {\n"
	code += "\treturn New" + className + "(v.PdispValVal(), false, false)\n"
	code += "}\n\n"

	code += "func (this *" + className + ") IID() *syscall.GUID {\n"
	code += "\treturn &IID_" + className + "\n"
	code += "}\n\n"

	code += "func (this *" + className + ") GetIDispatch(addRef bool) *win32.IDispatch {\n"
	code += "\tif addRef {\n"
	code += "\t\tthis.AddRef()\n"
	code += "\t}\n"
	code += "\treturn this.IDispatch\n"
	code += "}\n\n"

	var methods []*typelib.MethodData
	for _, r := range ti.Methods(typelib.InvokeAny) {
		// The IUnknown/IDispatch members a dispinterface lists are
		// flagged restricted; they are not part of the late-bound
		// surface.
		if r.Err != nil || !r.Method.Visible() {
			continue
		}
		methods = append(methods, r.Method)
	}

	setMethods := make(map[string]bool)
	for _, m := range methods {
		if m.InvokeKind()&(typelib.InvokePut|typelib.InvokePutRef) != 0 {
			setMethods["Set"+utils.CapName(m.Name())] = true
		}
	}

	setNames := make(map[string]bool)
	for _, m := range methods {
		var methodType string
		switch {
		case m.InvokeKind()&typelib.InvokeGet != 0:
			methodType = "PropGet"
		case m.InvokeKind()&typelib.InvokePut != 0:
			if setNames[m.Name()] {
				continue
			}
			methodType = "PropPut"
			setNames[m.Name()] = true
		case m.InvokeKind()&typelib.InvokePutRef != 0:
			if setNames[m.Name()] {
				continue
			}
			methodType = "PropPutRef"
			setNames[m.Name()] = true
		default:
			methodType = "Call"
		}
		code += this.genDispMethod(ti, m, className, methodType, setMethods)
	}
	this.codeMap[className] = code
}

func (this *Generator) genDispMethod(ti *typelib.TypeInfo, m *typelib.MethodData,
	className string, methodType string, setMethods map[string]bool) string {

	var code string
	sDispId := formatDispID(m.DispID())
	goReturnType, retCode := this.dispReturn(ti, m.ReturnType())

	fName := utils.CapName(m.Name())
	switch methodType {
	case "PropPut", "PropPutRef":
		fName = "Set" + fName
	case "Call":
		if setMethods[fName] {
			fName += "_"
		}
	}
	if fName == "QueryInterface" {
		fName += "_"
	}

	optParamCount := 0
	var optArgsVarName string
	for _, p := range m.Params() {
		if !p.Optional {
			continue
		}
		if optParamCount == 0 {
			optArgsVarName = className + "_" + fName + "_OptArgs"
			code += "var " + optArgsVarName + " = []string{\n\t"
		} else if optParamCount%4 == 0 {
			code += "\n\t"
		}
		code += "\"" + p.Name + "\", "
		optParamCount++
	}
	if optParamCount > 0 {
		code += "\n}\n\n"
	}

	code += "func (this *" + className + ") " + fName + "("

	var reqParamNames []string
	for _, p := range m.Params() {
		if p.Optional {
			break
		}
		if reqParamNames != nil {
			code += ", "
		}
		pName := utils.SafeGoName(utils.UncapName(p.Name))
		reqParamNames = append(reqParamNames, pName)
		code += pName + " " + dispParamType(this.render(ti, p.Type, p.Dir))
	}
	if optParamCount > 0 {
		if reqParamNames != nil {
			code += ", "
		}
		code += "optArgs ...interface{}"
	}
	code += ") " + goReturnType + " {\n"

	if optParamCount > 0 {
		code += "\toptArgs = ole.ProcessOptArgs(" + optArgsVarName + ", optArgs)\n"
	}

	code += "\tretVal := this." + methodType + "(" + sDispId
	if reqParamNames != nil {
		code += ", []interface{}{" + strings.Join(reqParamNames, ", ") + "}"
	} else {
		code += ", nil"
	}
	if optParamCount > 0 {
		code += ", optArgs..."
	}
	code += ")\n"

	if goReturnType == "ole.Variant" {
		code += "\tcom.CurrentScope.AddVarIfNeeded((*win32.VARIANT)(retVal))\n"
	}
	code += "\t" + retCode + "\n"
	code += "}\n\n"
	return code
}

// dispReturn picks the Go return type of a late-bound wrapper method
// and the statement that unpacks retVal into it.
func (this *Generator) dispReturn(ti *typelib.TypeInfo,
	td *typedesc.TypeDesc) (string, string) {

	if td == nil || td.VT == typedesc.VT_VOID || td.VT == typedesc.VT_EMPTY {
		return "", "_ = retVal"
	}
	if r, ok := dispRets[td.VT]; ok {
		return r.goType, r.code
	}
	if td.VT == typedesc.VT_PTR && td.Elem != nil {
		if td.Elem.VT == typedesc.VT_VARIANT {
			return "*ole.Variant", "return retVal"
		}
		if td.Elem.VT == typedesc.VT_USERDEFINED {
			if goType, code, ok := this.dispClassReturn(ti, td.Elem.HRef); ok {
				return goType, code
			}
		}
	}
	return "ole.Variant", "return *retVal"
}

// dispClassReturn handles returned interface pointers: a generated
// wrapper when the class lives in this package or a referenced one,
// the generic dispatch/unknown class otherwise.
func (this *Generator) dispClassReturn(ti *typelib.TypeInfo,
	href uint32) (string, string, bool) {

	ref, err := ti.RefTypeInfo(href)
	if err != nil {
		return "", "", false
	}
	defer ref.Dispose()

	name := utils.CapName(ref.Name())
	known := this.ownClassSet[name] || this.refClassMap[name] != ""
	if pkg, ok := this.refClassMap[name]; ok {
		this.usedRefClassMap[name] = pkg
	}

	switch ref.Kind() {
	case typelib.KindDispatch:
		if ref.Flags().Dual && known {
			// The wrapper is the vtable half. The dispatch and unknown
			// pointer slots of a VARIANT alias, so the punkVal read
			// yields the same pointer.
			return "*" + name, "return New" + name + "(retVal.PunkValVal(), false, true)", true
		}
		if this.EmitDispInterfaces && known {
			return "*" + name, "return New" + name + "(retVal.PdispValVal(), false, true)", true
		}
		return "*ole.DispatchClass", "return ole.NewDispatchClass(retVal.PdispValVal(), true)", true
	case typelib.KindInterface:
		if known {
			return "*" + name, "return New" + name + "(retVal.PunkValVal(), false, true)", true
		}
		return "*com.UnknownClass", "return com.NewUnknownClass(retVal.PunkValVal(), true)", true
	}
	return "", "", false
}

func (this *Generator) genCoClass(ti *typelib.TypeInfo) {
	className := utils.CapName(ti.Name())
	code := this.codeMap[className]

	guid := ti.Guid()
	sClsid, _ := win32.GuidToStr(&guid)
	code += "// " + sClsid + "\n"
	code += "var CLSID_" + className + " = " + utils.BuildGuidExpr(sClsid) + "\n\n"

	entries, err := ti.ImplTypes(typelib.ImplAll)
	if err != nil {
		this.result.TypesNotFound++
		return
	}
	var impl *typelib.ImplEntry
	for n := range entries {
		e := &entries[n]
		if e.Source {
			continue
		}
		if e.Default || impl == nil {
			impl = e
		}
	}
	if impl == nil {
		this.codeMap[className] = code
		return
	}

	implClass := utils.CapName(impl.Name)
	dispImpl := impl.DispInterface
	if dispImpl {
		// A dual default interface is wrapped by its vtable half.
		if it, err := ti.ImplInfo(impl.Index); err == nil {
			dispImpl = !it.Flags().Dual
			it.Dispose()
		}
	}
	if dispImpl && (!this.EmitDispInterfaces || isWin32Type(implClass)) {
		// No wrapper class was generated; expose the coclass through
		// the generic dispatch client.
		code += "func New" + className + "Instance(scoped bool) (*ole.DispatchClass, error) {\n"
		code += "\tvar p *win32.IDispatch\n"
		code += "\thr := win32.CoCreateInstance(&CLSID_" + className + ", nil, \n" +
			"\t\twin32.CLSCTX_INPROC_SERVER|win32.CLSCTX_LOCAL_SERVER,\n" +
			"\t\t&win32.IID_IDispatch, unsafe.Pointer(&p))\n"
		code += "\tif win32.FAILED(hr) {\n"
		code += "\t\treturn nil, com.NewError(hr)\n"
		code += "\t}\n"
		code += "\treturn ole.NewDispatchClass(p, scoped), nil\n"
		code += "}\n\n"
		this.codeMap[className] = code
		return
	}

	implIID := "IID_" + implClass
	if isWin32Type(implClass) {
		implIID = "win32.IID_" + implClass
		implClass = "win32." + implClass
	}

	code += "type " + className + " struct {\n"
	code += "\t" + implClass + "\n"
	code += "}\n\n"

	if dispImpl {
		code += "func New" + className + "(pDisp *win32.IDispatch, addRef bool, scoped bool) *" + className + " {\n"
		code += "\tp := &" + className + "{" + implClass + "{ole.OleClient{pDisp}}}\n"
		code += "\tif addRef {\n"
		code += "\t\tpDisp.AddRef()\n"
		code += "\t}\n"
		code += "\tif scoped {\n"
		code += "\t\tcom.AddToScope(p)\n"
		code += "\t}\n"
		code += "\treturn p\n"
		code += "}\n\n"

		code += "func New" + className + "FromVar(v ole.Variant, addRef bool, scoped bool) *" + className + " {\n"
		code += "\treturn New" + className + "(v.PdispValVal(), addRef, scoped)\n"
		code += "}\n\n"
	} else {
		code += "func New" + className + "(pUnk *win32.IUnknown, addRef bool, scoped bool) *" + className + " {\n"
		code += "\tp := (*" + className + ")(unsafe.Pointer(pUnk))\n"
		code += "\tif addRef {\n"
		code += "\t\tpUnk.AddRef()\n"
		code += "\t}\n"
		code += "\tif scoped {\n"
		code += "\t\tcom.AddToScope(p)\n"
		code += "\t}\n"
		code += "\treturn p\n"
		code += "}\n\n"
	}

	code += "func New" + className + "Instance(scoped bool) (*" + className + ", error) {\n"
	code += "\tvar p *"
	if dispImpl {
		code += "win32.IDispatch\n"
	} else {
		code += "win32.IUnknown\n"
	}
	code += "\thr := win32.CoCreateInstance(&CLSID_" + className + ", nil, \n" +
		"\t\twin32.CLSCTX_INPROC_SERVER|win32.CLSCTX_LOCAL_SERVER,\n" +
		"\t\t&" + implIID + ", unsafe.Pointer(&p))\n"
	code += "\tif win32.FAILED(hr) {\n"
	code += "\t\treturn nil, com.NewError(hr)\n"
	code += "\t}\n"
	code += "\treturn New" + className + "(p, false, scoped), nil\n"
	code += "}\n\n"

	this.codeMap[className] = code
}
