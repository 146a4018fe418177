package platform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/primeflix-cli/primeflix/constant"
)

// HTTPExecutor is the production Executor. It forwards action requests to the
// service endpoint an extension declares in its manifest.
type HTTPExecutor struct {
	registry Registry
	client   *http.Client
}

// NewHTTPExecutor returns an executor resolving service endpoints through the given registry.
func NewHTTPExecutor(registry Registry, client *http.Client) *HTTPExecutor {
	return &HTTPExecutor{registry: registry, client: client}
}

func (e *HTTPExecutor) ExecuteAction(extensionID string, params map[string]string) (any, error) {
	ext, ok := e.registry.Lookup(extensionID)
	if !ok {
		return nil, fmt.Errorf("extension %s is not installed", extensionID)
	}
	if ext.ServiceURL == "" {
		return nil, fmt.Errorf("extension %s declares no service endpoint", extensionID)
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, ext.ServiceURL+"/action", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extension %s: action returned status %d", extensionID, resp.StatusCode)
	}

	// The envelope shape is up to the extension. Preserve it as decoded JSON
	// when possible, otherwise hand the body back as a raw string.
	var envelope any
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return string(raw), nil
	}
	return envelope, nil
}

func (e *HTTPExecutor) ListDirectory(uri string) ([]DirectoryEntry, error) {
	req, err := http.NewRequest(http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory listing %s returned status %d", uri, resp.StatusCode)
	}

	var entries []DirectoryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("directory listing %s: %w", uri, err)
	}
	return entries, nil
}
