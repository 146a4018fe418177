package backend

import (
	"strings"

	"github.com/primeflix-cli/primeflix/log"
	"github.com/primeflix-cli/primeflix/platform"
	"github.com/samber/mo"
)

// DefaultCandidates is the ordered list of provider extension identifiers
// known to implement the expected catalog surface.
var DefaultCandidates = []string{
	"extension.video.primevideo",
	"extension.video.amazonvod",
}

// candidatePrefix matches identifiers of video provider extensions during the
// enumeration fallback.
const candidatePrefix = "extension.video."

// Locator confirms which provider extension is actually installed.
type Locator struct {
	registry   platform.Registry
	candidates []string
	category   string
}

// NewLocator returns a locator probing the given candidates in order. An empty
// candidate list falls back to DefaultCandidates.
func NewLocator(registry platform.Registry, candidates []string, category string) *Locator {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	return &Locator{registry: registry, candidates: candidates, category: category}
}

// Discover returns the first candidate confirmed present, falling back to
// enumerating the provider category and matching identifiers by prefix.
// Returns None when nothing matches; it never fails.
func (l *Locator) Discover() mo.Option[string] {
	for _, id := range l.candidates {
		if l.registry.Exists(id) {
			log.Debugf("locator: candidate %s is installed", id)
			return mo.Some(id)
		}
	}

	for _, ext := range l.registry.Enumerate(l.category) {
		if strings.HasPrefix(ext.ID, candidatePrefix) {
			log.Infof("locator: no known candidate installed, matched %s by prefix", ext.ID)
			return mo.Some(ext.ID)
		}
	}

	return mo.None[string]()
}
