// Package preflight gates playback behind a set of readiness checks. Every
// check runs even after a failure, so one pass reports everything wrong.
package preflight

import (
	"fmt"
	"strings"

	"github.com/primeflix-cli/primeflix/backend"
	"github.com/primeflix-cli/primeflix/log"
	"github.com/primeflix-cli/primeflix/platform"
	"github.com/primeflix-cli/primeflix/session"
)

// DecrypterExtensionID identifies the host component performing adaptive
// stream decryption. Protected playback is impossible without it.
const DecrypterExtensionID = "extension.stream.decrypter"

// Error aggregates every failed readiness check of one gate run.
type Error struct {
	Failures []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("not ready for playback: %s", strings.Join(e.Failures, "; "))
}

// Gate runs the readiness checks against the live collaborators.
type Gate struct {
	registry platform.Registry
	service  *backend.Service

	// loggedIn defaults to the session package; injected for tests.
	loggedIn func() bool
}

// NewGate builds a gate over the given registry and backend facade.
func NewGate(registry platform.Registry, service *backend.Service) *Gate {
	return &Gate{registry: registry, service: service, loggedIn: session.LoggedIn}
}

// Result is the outcome of a single named check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Run executes every check and returns the individual results plus an
// aggregated error when any failed.
func (g *Gate) Run() ([]Result, error) {
	results := []Result{
		g.checkSession(),
		g.checkDecrypter(),
		g.checkDRM(),
	}

	var failures []string
	for _, r := range results {
		if !r.Passed {
			failures = append(failures, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}

	if len(failures) > 0 {
		return results, &Error{Failures: failures}
	}
	log.Debug("preflight: all checks passed")
	return results, nil
}

func (g *Gate) checkSession() Result {
	if !g.loggedIn() {
		return Result{Name: "session", Detail: "not logged in, run the login command first"}
	}
	return Result{Name: "session", Passed: true, Detail: "logged in"}
}

func (g *Gate) checkDecrypter() Result {
	ext, ok := g.registry.Lookup(DecrypterExtensionID)
	if !ok {
		return Result{Name: "decrypter", Detail: fmt.Sprintf("%s is not installed", DecrypterExtensionID)}
	}
	if !ext.Enabled {
		return Result{Name: "decrypter", Detail: fmt.Sprintf("%s is installed but disabled", DecrypterExtensionID)}
	}
	return Result{Name: "decrypter", Passed: true, Detail: "installed and enabled"}
}

// checkDRM fails only on an explicit negative: an extension that cannot report
// its DRM state gets the benefit of the doubt.
func (g *Gate) checkDRM() Result {
	ready, known := g.service.DRMReady().Get()
	if !known {
		return Result{Name: "drm", Passed: true, Detail: "capability unknown, assumed ready"}
	}
	if !ready {
		return Result{Name: "drm", Detail: "provider reports DRM support unavailable"}
	}
	return Result{Name: "drm", Passed: true, Detail: "provider reports DRM ready"}
}
