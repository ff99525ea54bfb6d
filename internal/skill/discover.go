package skill

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// FindAll returns the absolute paths of every SKILL.md under the given
// section directories of root, sorted. Paths under any excludeDir
// (root-relative, e.g. the deployment target) are skipped. Sections that do
// not exist are ignored.
func FindAll(root string, sections []string, excludeDirs ...string) ([]string, error) {
	var found []string

	for _, section := range sections {
		base := filepath.Join(root, section)
		err := filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				if os.IsNotExist(err) {
					return nil
				}
				return err
			}
			if d.IsDir() || d.Name() != DocumentName {
				return nil
			}
			if isUnderAny(root, path, excludeDirs) {
				return nil
			}
			found = append(found, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	slices.Sort(found)
	return slices.Compact(found), nil
}

// isUnderAny reports whether path falls under any of the root-relative dirs.
func isUnderAny(root, path string, dirs []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, dir := range dirs {
		dir = strings.TrimSuffix(filepath.ToSlash(dir), "/")
		if dir != "" && (rel == dir || strings.HasPrefix(rel, dir+"/")) {
			return true
		}
	}
	return false
}
