// Package resolve maps the textual import references extract finds
// (JS/TS specifiers, Python dotted modules, C/C++ local includes) to the
// canonical path token that becomes the "file:<token>" edge target
// The token need not name a file that actually exists —
// that is the signal broken-import detection relies on.
package resolve

import (
	"path"
	"strings"
)

// JS resolves a JS/TS import specifier seen in the file at fromPath.
// Relative specifiers ("./x", "../x") are resolved lexically against
// fromPath's directory and normalized. "@scope/pkg/sub" keeps its first
// two slash-separated segments as the package name; any other bare
// specifier keeps just its first segment. Non-relative specifiers
// resolve to the pseudo path "__pkg__/<name>".
func JS(fromPath, spec string) string {
	if strings.HasPrefix(spec, ".") {
		dir := path.Dir(fromPath)
		joined := path.Join(dir, spec)
		return path.Clean(joined)
	}

	name := packageName(spec)
	return "__pkg__/" + name
}

func packageName(spec string) string {
	segs := strings.Split(spec, "/")
	if strings.HasPrefix(spec, "@") && len(segs) >= 2 {
		return segs[0] + "/" + segs[1]
	}
	return segs[0]
}

// Python resolves a dotted module reference. module must already have
// any leading dots stripped (the caller counts them into level). If
// level > 0 (a "from .x import y" / "from ..x import y" style relative
// import), it walks up level-1 directories from fromPath's directory and
// joins the remaining dotted path as directory components. Otherwise the
// dotted module is split on "." and joined with "/". No extension is
// appended either way.
func Python(fromPath string, level int, module string) string {
	var segs []string
	if module != "" {
		segs = strings.Split(module, ".")
	}

	if level <= 0 {
		return strings.Join(segs, "/")
	}

	dir := path.Dir(fromPath)
	for i := 0; i < level-1; i++ {
		dir = path.Dir(dir)
	}
	if len(segs) == 0 {
		return path.Clean(dir)
	}
	return path.Clean(path.Join(dir, strings.Join(segs, "/")))
}

// CInclude resolves a local ("quoted") #include path relative to the
// including file's directory.
func CInclude(fromPath, includePath string) string {
	dir := path.Dir(fromPath)
	return path.Clean(path.Join(dir, includePath))
}
