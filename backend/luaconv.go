package backend

import lua "github.com/yuin/gopher-lua"

// fromLua converts a Lua value into plain Go data: tables become slices when
// array-like and string-keyed maps otherwise, numbers become float64.
func fromLua(v lua.LValue) any {
	switch value := v.(type) {
	case *lua.LTable:
		if n := value.MaxN(); n > 0 {
			list := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				list = append(list, fromLua(value.RawGetInt(i)))
			}
			return list
		}

		m := make(map[string]any)
		value.ForEach(func(k, val lua.LValue) {
			m[k.String()] = fromLua(val)
		})
		return m
	case lua.LString:
		return string(value)
	case lua.LNumber:
		return float64(value)
	case lua.LBool:
		return bool(value)
	default:
		return nil
	}
}

// kwTable builds a single-table argument from keyword pairs, used when a
// positional call fails with a signature mismatch.
func kwTable(state *lua.LState, kw map[string]lua.LValue) *lua.LTable {
	table := state.NewTable()
	for k, v := range kw {
		table.RawSetString(k, v)
	}
	return table
}
