package monitoring

import (
	"regexp"
	"strings"
)

// runtime.FuncForPC names look like
// "github.com/catatduit/go-catatduit/internal/services.(*transaction).Create";
// the capture groups pull out the package, optional receiver, and method.
var reFuncName = regexp.MustCompile(`(?:[^/]+/)*([^./]+)\.(?:\(?\*?([^.)]+)\)?\.)?(.+)$`)

// getSegmentName shortens a fully qualified function name to the
// "package.receiver.method" form used for newrelic segments.
func getSegmentName(fullFuncName string) string {
	m := reFuncName.FindStringSubmatch(fullFuncName)
	if len(m) < 4 {
		return fullFuncName
	}

	parts := make([]string, 0, 3)
	for _, p := range m[1:] {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, ".")
}
