package backend

import (
	"fmt"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/primeflix-cli/primeflix/filesystem"
	"github.com/primeflix-cli/primeflix/log"
	"github.com/primeflix-cli/primeflix/platform"
	"github.com/samber/mo"
	lua "github.com/yuin/gopher-lua"
)

// Entry scripts probed when the extension's manifest declares none. Provider
// extensions in the wild are inconsistent about their entry point name.
var entryCandidates = []string{"main.lua", "addon.lua", "provider.lua"}

// Global tables probed for the capability surface. When none is present the
// functions are expected as plain globals.
var objectCandidates = []string{"provider", "backend", "api"}

// Candidate function names per operation, probed in order.
var (
	homeFns     = []string{"homeRails", "getHomeRails", "buildRoot"}
	railFns     = []string{"railItems", "getRail", "browse"}
	searchFns   = []string{"searchVideos", "search"}
	playableFns = []string{"getPlayable", "getStream", "playbackResources"}
	regionFns   = []string{"getRegion", "region"}
	drmFns      = []string{"isDrmReady", "drmReady"}
)

// DirectAdapter binds to the provider extension's code in-process by loading
// its entry script and probing for a minimum capability set.
type DirectAdapter struct {
	id    string
	state *lua.LState
	bound *lua.LTable // nil when functions live in globals

	// Lua states are not safe for concurrent use; one coarse lock per binding.
	mu sync.Mutex
}

// NewDirectAdapter attempts the in-process binding. The first entry script
// exposing both a rail-like and a playable-like accessor wins; a missing
// search accessor is a soft capability gap, not a failure. When no script
// qualifies, construction fails with an UnavailableError.
func NewDirectAdapter(id string, registry platform.Registry, loader ScriptLoader) (*DirectAdapter, error) {
	ext, ok := registry.Lookup(id)
	if !ok {
		return nil, &UnavailableError{Reasons: []string{fmt.Sprintf("direct: extension %s is not installed", id)}}
	}

	candidates := entryCandidates
	if ext.Entry != "" {
		candidates = append([]string{ext.Entry}, entryCandidates...)
	}

	var reasons []string
	for _, name := range candidates {
		path := filepath.Join(ext.Path, name)
		if exists, _ := filesystem.API().Exists(path); !exists {
			continue
		}

		state, err := loader.Load(path)
		if err != nil {
			reasons = append(reasons, fmt.Sprintf("direct: %s: %v", name, err))
			continue
		}

		adapter := &DirectAdapter{id: id, state: state, bound: bindObject(state)}
		if adapter.find(railFns) == lua.LNil || adapter.find(playableFns) == lua.LNil {
			reasons = append(reasons, fmt.Sprintf("direct: %s lacks the required capability set", name))
			state.Close()
			continue
		}

		if adapter.find(searchFns) == lua.LNil {
			log.Warnf("direct: %s exposes no search accessor, searches will fail", id)
		}
		log.Infof("direct: bound %s via %s", id, name)
		return adapter, nil
	}

	if len(reasons) == 0 {
		reasons = []string{fmt.Sprintf("direct: no entry script found for %s", id)}
	}
	return nil, &UnavailableError{Reasons: reasons}
}

// bindObject picks the capability surface: the first candidate global table
// carrying a rail accessor, or nil to fall back to plain globals.
func bindObject(state *lua.LState) *lua.LTable {
	for _, name := range objectCandidates {
		obj, ok := state.GetGlobal(name).(*lua.LTable)
		if !ok {
			continue
		}
		for _, fn := range railFns {
			if obj.RawGetString(fn).Type() == lua.LTFunction {
				return obj
			}
		}
	}
	return nil
}

func (d *DirectAdapter) Strategy() Strategy {
	return StrategyDirect
}

// find returns the first candidate name bound to a function, or LNil.
func (d *DirectAdapter) find(names []string) lua.LValue {
	for _, name := range names {
		var v lua.LValue
		if d.bound != nil {
			v = d.bound.RawGetString(name)
		} else {
			v = d.state.GetGlobal(name)
		}
		if v.Type() == lua.LTFunction {
			return v
		}
	}
	return lua.LNil
}

// call dispatches op against the first matching candidate function, invoking
// it positionally and retrying with a keyword table on failure.
func (d *DirectAdapter) call(op string, names []string, args []lua.LValue, kw map[string]lua.LValue) (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fn := d.find(names)
	if fn == lua.LNil {
		return nil, opErrorf(op, "extension exposes no %s accessor", op)
	}

	result, err := d.invoke(fn, args...)
	if err != nil {
		result, err = d.invoke(fn, kwTable(d.state, kw))
	}
	if err != nil {
		return nil, opErrorf(op, "%v", err)
	}
	return fromLua(result), nil
}

func (d *DirectAdapter) invoke(fn lua.LValue, args ...lua.LValue) (lua.LValue, error) {
	err := d.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		return nil, err
	}

	result := d.state.Get(-1)
	d.state.Pop(1)
	return result, nil
}

func (d *DirectAdapter) HomeRails() (any, error) {
	return d.call("home", homeFns, nil, nil)
}

func (d *DirectAdapter) Rail(id, cursor string, limit int) (any, error) {
	return d.call("rail", railFns,
		[]lua.LValue{lua.LString(id), lua.LString(cursor), lua.LNumber(limit)},
		map[string]lua.LValue{
			"id":     lua.LString(id),
			"cursor": lua.LString(cursor),
			"limit":  lua.LNumber(limit),
		})
}

func (d *DirectAdapter) Search(query, cursor string, limit int) (any, error) {
	return d.call("search", searchFns,
		[]lua.LValue{lua.LString(query), lua.LString(cursor), lua.LNumber(limit)},
		map[string]lua.LValue{
			"query":  lua.LString(query),
			"cursor": lua.LString(cursor),
			"limit":  lua.LNumber(limit),
		})
}

func (d *DirectAdapter) Playable(id string) (any, error) {
	return d.call("playable", playableFns,
		[]lua.LValue{lua.LString(id)},
		map[string]lua.LValue{"id": lua.LString(id)})
}

func (d *DirectAdapter) Region() (any, error) {
	return d.call("region", regionFns, nil, nil)
}

func (d *DirectAdapter) DRMReady() mo.Option[bool] {
	raw, err := d.call("drm", drmFns, nil, nil)
	if err != nil {
		return mo.None[bool]()
	}

	switch v := raw.(type) {
	case bool:
		return mo.Some(v)
	case string:
		ready, err := strconv.ParseBool(v)
		if err != nil {
			return mo.None[bool]()
		}
		return mo.Some(ready)
	default:
		return mo.None[bool]()
	}
}

// Close releases the underlying Lua state.
func (d *DirectAdapter) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Close()
}
