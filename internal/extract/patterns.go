package extract

import "regexp"

// JavaScript/TypeScript extraction patterns.
var (
	jsImportFrom    = regexp.MustCompile(`import\s+.+?\s+from\s+['"]([^'"]+)['"]`)
	jsImportBare    = regexp.MustCompile(`^import\s+['"]([^'"]+)['"]`)
	jsRequire       = regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`)
	jsDynamicImport = regexp.MustCompile(`import\(\s*['"]([^'"]+)['"]\s*\)`)

	jsExportDecl   = regexp.MustCompile(`export\s+(?:default\s+)?(?:function|class|const|let|var)\s+(\w+)`)
	jsExportBraces = regexp.MustCompile(`export\s*\{\s*([^}]+)\s*\}`)

	jsHTTPRoute = regexp.MustCompile(`(?:app|router|server)\.(get|post|put|patch|delete|all)\(\s*['"]([^'"]+)['"]`)
	jsFetch     = regexp.MustCompile(`fetch\(\s*['"]([^'"]+)['"]`)
	jsAxiosCall = regexp.MustCompile(`(?:axios|api)\.(get|post|put|patch|delete)\(\s*['"]([^'"]+)['"]`)

	jsWSEmit = regexp.MustCompile(`(?:socket|io)\.emit\(\s*['"]([^'"]+)['"]`)
	jsWSOn   = regexp.MustCompile(`(?:socket|io)\.on\(\s*['"]([^'"]+)['"]`)

	jsMQTTPublish   = regexp.MustCompile(`\.publish\(\s*['"]([^'"]+)['"]`)
	jsMQTTSubscribe = regexp.MustCompile(`\.subscribe\(\s*['"]([^'"]+)['"]`)

	jsEnvDot     = regexp.MustCompile(`process\.env\.(\w+)`)
	jsEnvBracket = regexp.MustCompile(`process\.env\[['"]([^'"]+)['"]\]`)
	jsEnvMeta    = regexp.MustCompile(`import\.meta\.env\.(\w+)`)
)

// Python extraction patterns.
var (
	pyFromImport = regexp.MustCompile(`^from\s+(\.*)([\w.]*)\s+import\s+`)
	pyImport     = regexp.MustCompile(`^import\s+([\w.]+)`)

	pyDef   = regexp.MustCompile(`^(?:async\s+)?def\s+(\w+)\s*\(`)
	pyClass = regexp.MustCompile(`^class\s+(\w+)`)

	pyMQTTPublish     = regexp.MustCompile(`\.publish\(\s*["']([^"']+)["']`)
	pyMQTTSubscribe   = regexp.MustCompile(`\.subscribe\(\s*["']([^"']+)["']`)
	pyMessageCallback = regexp.MustCompile(`message_callback_add\(\s*["']([^"']+)["']`)

	pySerialRead  = regexp.MustCompile(`\bser\.(read|readline|read_until)\(`)
	pySerialWrite = regexp.MustCompile(`\bser\.(write|writelines)\(`)

	pyRequests = regexp.MustCompile(`requests\.(get|post|put|patch|delete)\(\s*["']([^"']+)["']`)
	pyRoute    = regexp.MustCompile(`@(?:app|router|blueprint)\.(?:route|get|post|put|patch|delete)\(\s*["']([^"']+)["']`)

	pyEnvBracket = regexp.MustCompile(`os\.environ\[['"]([^'"]+)['"]\]`)
	pyEnvGetAttr = regexp.MustCompile(`os\.environ\.get\(\s*['"]([^'"]+)['"]`)
	pyEnvGetenv  = regexp.MustCompile(`os\.getenv\(\s*['"]([^'"]+)['"]`)
)

// C/C++/Arduino extraction patterns.
var (
	cIncludeLocal  = regexp.MustCompile(`^#include\s*"([^"]+)"`)
	cIncludeSystem = regexp.MustCompile(`^#include\s*<([^>]+)>`)

	cReturnType = regexp.MustCompile(`^(void|int|float|double|bool|String|char\s*\*?|unsigned(?:\s+\w+)?|long(?:\s+\w+)?|uint(?:8|16|32|64)_t|size_t)\s+(\w+)\s*\(`)

	cMQTTPublish   = regexp.MustCompile(`\.publish\(\s*"([^"]+)"`)
	cMQTTSubscribe = regexp.MustCompile(`\.subscribe\(\s*"([^"]+)"`)

	cSerialWrite = regexp.MustCompile(`\bSerial\d*\.(print|println|write|printf)\(`)
	cSerialRead  = regexp.MustCompile(`\bSerial\d*\.(read|readString|readLine|parseInt|parseFloat|available)\(`)

	cHTTPBegin = regexp.MustCompile(`\.begin\(\s*"(https?://[^"]+)"`)
)

var cControlFlowKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true,
	"return": true, "else": true, "do": true, "catch": true,
}
