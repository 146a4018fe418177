// Package backend binds the application to whichever provider extension is
// installed, negotiating one of two communication strategies and normalizing
// whatever shape of payload comes back.
package backend

import "github.com/samber/mo"

// Strategy identifies one of the two mutually exclusive communication techniques.
type Strategy string

const (
	// StrategyDirect binds to the extension's code in-process.
	StrategyDirect Strategy = "direct"

	// StrategyRPC reaches the extension indirectly through host primitives.
	StrategyRPC Strategy = "rpc"
)

// Descriptor records the outcome of strategy selection. It is created once per
// process and immutable thereafter.
type Descriptor struct {
	BackendID string   `json:"backend_id"`
	Strategy  Strategy `json:"strategy"`
}

// Adapter is the uniform surface both strategies present to the facade.
// Operations return raw, provider-shaped payloads; the normalizer owns the
// mapping into canonical entities.
type Adapter interface {
	Strategy() Strategy

	HomeRails() (any, error)
	Rail(id, cursor string, limit int) (any, error)
	Search(query, cursor string, limit int) (any, error)
	Playable(id string) (any, error)
	Region() (any, error)

	// DRMReady reports the extension's DRM capability, or None when unknown.
	DRMReady() mo.Option[bool]
}
