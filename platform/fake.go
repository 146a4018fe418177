package platform

import "fmt"

// FakeRegistry is an in-memory Registry used by tests and offline diagnostics.
type FakeRegistry struct {
	Extensions []Extension
}

func (r *FakeRegistry) Exists(id string) bool {
	_, ok := r.Lookup(id)
	return ok
}

func (r *FakeRegistry) Lookup(id string) (Extension, bool) {
	for _, ext := range r.Extensions {
		if ext.ID == id {
			return ext, true
		}
	}
	return Extension{}, false
}

func (r *FakeRegistry) Enumerate(category string) []Extension {
	var out []Extension
	for _, ext := range r.Extensions {
		if category == "" || ext.Category == category {
			out = append(out, ext)
		}
	}
	return out
}

// FakeExecutor is an in-memory Executor with scripted responses, keyed by action tag.
type FakeExecutor struct {
	// Responses maps an action tag to its result envelope.
	Responses map[string]any
	// Errors maps an action tag to a transport-level failure.
	Errors map[string]error
	// Listings maps a directory URI to its entries.
	Listings map[string][]DirectoryEntry

	// Calls records every executed action tag, in order.
	Calls []string
}

func (e *FakeExecutor) ExecuteAction(extensionID string, params map[string]string) (any, error) {
	action := params["action"]
	e.Calls = append(e.Calls, action)

	if err, ok := e.Errors[action]; ok {
		return nil, err
	}
	if resp, ok := e.Responses[action]; ok {
		return resp, nil
	}
	return nil, fmt.Errorf("no scripted response for action %q", action)
}

func (e *FakeExecutor) ListDirectory(uri string) ([]DirectoryEntry, error) {
	if entries, ok := e.Listings[uri]; ok {
		return entries, nil
	}
	return nil, fmt.Errorf("no scripted listing for %q", uri)
}
