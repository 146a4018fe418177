// Package platform defines the host primitives the backend layer depends on.
//
// The registry and executor are specified as interfaces so the core can be
// exercised against fakes; production implementations talk to the local
// extension directory and extension services.
package platform

// Extension describes an installed provider extension as reported by a Registry.
type Extension struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Path       string `json:"-"`
	Entry      string `json:"entry"`
	ServiceURL string `json:"service_url"`
	Enabled    bool   `json:"enabled"`
}

// Registry reports which extensions are installed on the host.
type Registry interface {
	// Exists reports whether an extension with the given identifier is installed.
	Exists(id string) bool

	// Lookup returns the full descriptor for an installed extension.
	Lookup(id string) (Extension, bool)

	// Enumerate returns every installed extension of the given category, in stable order.
	Enumerate(category string) []Extension
}

// DirectoryEntry is one row of an emulated directory listing returned by an extension.
type DirectoryEntry struct {
	Label         string            `json:"label"`
	File          string            `json:"file"`
	Plot          string            `json:"plot"`
	Art           map[string]string `json:"art"`
	StreamDetails map[string]any    `json:"stream_details"`
	Resume        float64           `json:"resume"`
}

// Executor carries requests to an extension without any compile-time knowledge of its surface.
type Executor interface {
	// ExecuteAction fires an action request at an extension and returns its opaque
	// result envelope. The envelope may be a structured map, a scalar, or a
	// JSON-encoded string requiring a second decode.
	ExecuteAction(extensionID string, params map[string]string) (any, error)

	// ListDirectory emulates a rail fetch through directory browsing.
	ListDirectory(uri string) ([]DirectoryEntry, error)
}
