package platform

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/primeflix-cli/primeflix/filesystem"
	"github.com/primeflix-cli/primeflix/log"
)

// ManifestName is the descriptor file expected at the root of every installed extension.
const ManifestName = "extension.json"

// DirRegistry is the production Registry. It treats every subdirectory of the
// extensions root that carries a manifest as an installed extension.
type DirRegistry struct {
	root string
}

// NewDirRegistry returns a registry scanning the given extensions root directory.
func NewDirRegistry(root string) *DirRegistry {
	return &DirRegistry{root: root}
}

func (r *DirRegistry) Exists(id string) bool {
	_, ok := r.Lookup(id)
	return ok
}

func (r *DirRegistry) Lookup(id string) (Extension, bool) {
	for _, ext := range r.scan() {
		if ext.ID == id {
			return ext, true
		}
	}
	return Extension{}, false
}

func (r *DirRegistry) Enumerate(category string) []Extension {
	var out []Extension
	for _, ext := range r.scan() {
		if category == "" || ext.Category == category {
			out = append(out, ext)
		}
	}
	return out
}

// scan reads every manifest under the extensions root. Unreadable or malformed
// manifests are skipped, never fatal: a broken extension must not hide the rest.
func (r *DirRegistry) scan() []Extension {
	entries, err := filesystem.API().ReadDir(r.root)
	if err != nil {
		log.Debugf("extension registry: reading %s: %v", r.root, err)
		return nil
	}

	var found []Extension
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(r.root, entry.Name())
		raw, err := filesystem.API().ReadFile(filepath.Join(dir, ManifestName))
		if err != nil {
			continue
		}

		var ext Extension
		if err := json.Unmarshal(raw, &ext); err != nil {
			log.Debugf("extension registry: malformed manifest in %s: %v", dir, err)
			continue
		}
		if ext.ID == "" {
			continue
		}

		ext.Path = dir
		found = append(found, ext)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found
}
