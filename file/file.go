package file

import (
	"path/filepath"
	"strings"
)

// RelativeName is path relative to root in slash form, which is how media
// files are keyed in the metadata table. Paths outside root are returned
// unchanged.
func RelativeName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// OutputName flattens a relative media name into a single json filename.
func OutputName(relative string) string {
	name := strings.TrimSuffix(relative, filepath.Ext(relative))
	name = strings.ReplaceAll(name, "/", "__")
	return name + ".json"
}

// CreateOutputNameMap maps every media path to its output filename.
func CreateOutputNameMap(root string, paths []string) map[string]string {
	res := make(map[string]string, len(paths))
	for _, p := range paths {
		res[p] = OutputName(RelativeName(root, p))
	}
	return res
}
