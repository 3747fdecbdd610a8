package notes

import (
	_ "embed"
	"strings"
)

//go:embed template.txt
var scaffoldTemplate string

// Scaffold renders the embedded template for a new release-notes file with
// the given project name and version. The result is canonically formatted
// and passes the linter with default settings.
func Scaffold(project, version string) string {
	header := project + " " + version
	out := scaffoldTemplate
	out = strings.ReplaceAll(out, "{{HEADER}}", header)
	out = strings.ReplaceAll(out, "{{SEPARATOR}}", strings.Repeat("-", len(header)))
	return out
}
