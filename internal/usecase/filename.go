package usecase

import (
	"path"
	"strings"
)

// DeriveQuery turns an uploaded image filename into the free-text label the
// matcher scores against the catalog: directory components and the file
// extension are stripped and the remainder is lowercased. Deeper cleanup
// (punctuation, casing, articles) is the matcher's own job.
func DeriveQuery(filename string) string {
	if strings.TrimSpace(filename) == "" {
		return ""
	}

	// Uploads arrive with both separator styles
	name := strings.ReplaceAll(filename, "\\", "/")
	name = path.Base(name)

	if ext := path.Ext(name); ext != "" && ext != name {
		name = name[:len(name)-len(ext)]
	}

	return strings.ToLower(strings.TrimSpace(name))
}
