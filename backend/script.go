package backend

import (
	"bytes"
	"sync"

	libs "github.com/metafates/mangal-lua-libs"
	"github.com/primeflix-cli/primeflix/filesystem"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// ScriptLoader executes an extension's entry script and returns the resulting
// Lua state. Injected so adapter tests can supply prepared states.
type ScriptLoader interface {
	Load(path string) (*lua.LState, error)
}

// NewScriptLoader returns the production loader with bytecode caching.
func NewScriptLoader() ScriptLoader {
	return &luaLoader{}
}

type luaLoader struct{}

// bytecodeCache holds compiled function prototypes keyed by script path, so
// repeated bindings of the same extension skip recompilation.
var bytecodeCache sync.Map

func (luaLoader) Load(path string) (*lua.LState, error) {
	state := lua.NewState()
	libs.Preload(state)

	if cached, ok := bytecodeCache.Load(path); ok {
		fn := state.NewFunctionFromProto(cached.(*lua.FunctionProto))
		state.Push(fn)
		if err := state.PCall(0, lua.MultRet, nil); err != nil {
			state.Close()
			return nil, err
		}
		return state, nil
	}

	src, err := filesystem.API().ReadFile(path)
	if err != nil {
		state.Close()
		return nil, err
	}

	chunk, err := parse.Parse(bytes.NewReader(src), path)
	if err != nil {
		state.Close()
		return nil, err
	}

	proto, err := lua.Compile(chunk, path)
	if err != nil {
		state.Close()
		return nil, err
	}

	bytecodeCache.Store(path, proto)

	fn := state.NewFunctionFromProto(proto)
	state.Push(fn)
	if err := state.PCall(0, lua.MultRet, nil); err != nil {
		state.Close()
		return nil, err
	}
	return state, nil
}
