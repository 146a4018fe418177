package backend

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/primeflix-cli/primeflix/log"
	"github.com/primeflix-cli/primeflix/platform"
	"github.com/samber/mo"
)

// RPCAdapter reaches the provider extension indirectly through the host's
// execute-action and list-directory primitives. The strategy is blind: whether
// the extension actually implements the expected actions only surfaces as a
// malformed-payload error at call time, never at construction.
type RPCAdapter struct {
	id       string
	executor platform.Executor
}

// NewRPCAdapter confirms the extension is installed and binds blindly.
func NewRPCAdapter(id string, registry platform.Registry, executor platform.Executor) (*RPCAdapter, error) {
	if !registry.Exists(id) {
		return nil, &UnavailableError{Reasons: []string{fmt.Sprintf("rpc: extension %s is not installed", id)}}
	}
	return &RPCAdapter{id: id, executor: executor}, nil
}

func (r *RPCAdapter) Strategy() Strategy {
	return StrategyRPC
}

// execute sends one action request and decodes the result envelope.
func (r *RPCAdapter) execute(op string, params map[string]string) (any, error) {
	raw, err := r.executor.ExecuteAction(r.id, params)
	if err != nil {
		return nil, opErrorf(op, "%v", err)
	}

	decoded := decodeEnvelope(raw)
	if m, ok := decoded.(map[string]any); ok {
		if errField, present := m["error"]; present && errField != nil {
			return nil, opErrorf(op, "extension reported: %v", errField)
		}
	}
	return decoded, nil
}

// decodeEnvelope unwraps double-encoded responses: a string value is given one
// JSON decode attempt, and kept as a literal scalar when that fails.
func decodeEnvelope(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}

	var decoded any
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		return s
	}
	return decoded
}

func (r *RPCAdapter) HomeRails() (any, error) {
	return r.execute("home", map[string]string{"action": "home_rails"})
}

func (r *RPCAdapter) Rail(id, cursor string, limit int) (any, error) {
	raw, err := r.execute("rail", map[string]string{
		"action": "rail",
		"id":     id,
		"cursor": cursor,
		"limit":  strconv.Itoa(limit),
	})
	if err == nil {
		return raw, nil
	}

	// Some extensions never answer the rail action but do serve directory
	// listings. Emulate the fetch through browsing before giving up.
	entries, listErr := r.executor.ListDirectory(r.railURI(id))
	if listErr != nil {
		return nil, err
	}

	log.Debugf("rpc: rail action failed for %s, served %d entries via directory listing", id, len(entries))
	items := make([]any, 0, len(entries))
	for _, entry := range entries {
		item := map[string]any{
			"id":    entry.File,
			"title": entry.Label,
			"plot":  entry.Plot,
		}
		if len(entry.Art) > 0 {
			art := make(map[string]any, len(entry.Art))
			for k, v := range entry.Art {
				art[k] = v
			}
			item["art"] = art
		}
		items = append(items, item)
	}
	return items, nil
}

// railURI addresses a rail as a browsable virtual directory.
func (r *RPCAdapter) railURI(railID string) string {
	return fmt.Sprintf("extension://%s/rail/%s", r.id, railID)
}

func (r *RPCAdapter) Search(query, cursor string, limit int) (any, error) {
	return r.execute("search", map[string]string{
		"action": "search",
		"query":  query,
		"cursor": cursor,
		"limit":  strconv.Itoa(limit),
	})
}

func (r *RPCAdapter) Playable(id string) (any, error) {
	return r.execute("playable", map[string]string{
		"action": "playable",
		"id":     id,
	})
}

func (r *RPCAdapter) Region() (any, error) {
	return r.execute("region", map[string]string{"action": "region"})
}

func (r *RPCAdapter) DRMReady() mo.Option[bool] {
	raw, err := r.execute("drm", map[string]string{"action": "drm_status"})
	if err != nil {
		return mo.None[bool]()
	}

	switch v := raw.(type) {
	case bool:
		return mo.Some(v)
	case map[string]any:
		if ready, ok := v["ready"].(bool); ok {
			return mo.Some(ready)
		}
	}
	return mo.None[bool]()
}
