package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const scenarioTypeName = "houseguard.scenario"

// LoadFile runs the Lua script at path and returns the Scenario it built.
// An unnamed scenario takes the file's base name.
func LoadFile(path string) (*Scenario, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return LoadString(name, string(src))
}

// LoadString runs a Lua chunk and returns the Scenario it built.
func LoadString(name, src string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerLuaTypes(state)

	if err := lua.LoadBuffer(state, src, "@"+name, "t"); err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", name, err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("scenario: run %s: %w", name, err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario: %s: script must return a Scenario", name)
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	sc, ok := ud.(*Scenario)
	if !ok || sc == nil {
		return nil, fmt.Errorf("scenario: %s: script returned an invalid Scenario", name)
	}
	if strings.TrimSpace(sc.Name) == "" {
		sc.Name = name
	}
	return sc, nil
}

func registerLuaTypes(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)

	state.NewTable()
	lua.SetFunctions(state, []lua.RegistryFunction{{Name: "new", Function: scenarioNew}}, 0)
	state.SetGlobal("Scenario")
}

func scenarioNew(state *lua.State) int {
	sc := &Scenario{Name: lua.OptString(state, 1, "")}
	state.PushUserData(sc)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "config", Function: scenarioConfig},
	{Name: "wait", Function: scenarioWait},
	{Name: "hold", Function: scenarioHold},
	{Name: "point", Function: scenarioPoint},
	{Name: "send_letter", Function: simpleStep("send_letter")},
	{Name: "vote_stop", Function: simpleStep("vote_stop")},
	{Name: "reset", Function: simpleStep("reset")},
	{Name: "run_until_end", Function: scenarioRunUntilEnd},
	{Name: "expect_alive", Function: scenarioExpectAlive},
	{Name: "expect_phase", Function: stringExpect("expect_phase")},
	{Name: "expect_cause", Function: stringExpect("expect_cause")},
	{Name: "expect_letter_sent", Function: boolExpect("expect_letter_sent")},
	{Name: "expect_vote_stop_used", Function: boolExpect("expect_vote_stop_used")},
	{Name: "expect_accepted", Function: boolExpect("expect_accepted")},
	{Name: "expect_agent", Function: scenarioExpectAgent},
	{Name: "expect_all_agents", Function: scenarioExpectAllAgents},
}

func scenarioConfig(state *lua.State) int {
	sc := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	if sc.Config == nil {
		sc.Config = map[string]any{}
	}
	for k, v := range tableToMap(state, 2) {
		sc.Config[k] = v
	}
	return 0
}

func scenarioWait(state *lua.State) int {
	sc := checkScenario(state)
	seconds := lua.CheckNumber(state, 2)
	appendStep(sc, "wait", where(state), map[string]any{"seconds": seconds})
	return 0
}

func scenarioHold(state *lua.State) int {
	sc := checkScenario(state)
	keys := luaToGo(state, 2)
	seconds := lua.CheckNumber(state, 3)
	appendStep(sc, "hold", where(state), map[string]any{"keys": keys, "seconds": seconds})
	return 0
}

func scenarioPoint(state *lua.State) int {
	sc := checkScenario(state)
	x := lua.CheckNumber(state, 2)
	y := lua.CheckNumber(state, 3)
	seconds := lua.CheckNumber(state, 4)
	appendStep(sc, "point", where(state), map[string]any{"x": x, "y": y, "seconds": seconds})
	return 0
}

func scenarioRunUntilEnd(state *lua.State) int {
	sc := checkScenario(state)
	seconds := lua.OptNumber(state, 2, 120)
	appendStep(sc, "run_until_end", where(state), map[string]any{"seconds": seconds})
	return 0
}

func scenarioExpectAlive(state *lua.State) int {
	sc := checkScenario(state)
	n := lua.CheckInteger(state, 2)
	appendStep(sc, "expect_alive", where(state), map[string]any{"value": n})
	return 0
}

func scenarioExpectAgent(state *lua.State) int {
	sc := checkScenario(state)
	name := lua.CheckString(state, 2)
	lua.CheckType(state, 3, lua.TypeTable)
	args := tableToMap(state, 3)
	args["name"] = name
	appendStep(sc, "expect_agent", where(state), args)
	return 0
}

func scenarioExpectAllAgents(state *lua.State) int {
	sc := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(sc, "expect_all_agents", where(state), tableToMap(state, 2))
	return 0
}

func simpleStep(kind string) lua.Function {
	return func(state *lua.State) int {
		sc := checkScenario(state)
		appendStep(sc, kind, where(state), nil)
		return 0
	}
}

func stringExpect(kind string) lua.Function {
	return func(state *lua.State) int {
		sc := checkScenario(state)
		value := lua.CheckString(state, 2)
		appendStep(sc, kind, where(state), map[string]any{"value": value})
		return 0
	}
}

func boolExpect(kind string) lua.Function {
	return func(state *lua.State) int {
		sc := checkScenario(state)
		value := true
		if !state.IsNoneOrNil(2) {
			lua.CheckType(state, 2, lua.TypeBoolean)
			value = state.ToBoolean(2)
		}
		appendStep(sc, kind, where(state), map[string]any{"value": value})
		return 0
	}
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if sc, ok := ud.(*Scenario); ok && sc != nil {
		return sc
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

// where returns the "chunk:line:" position of the calling Lua code.
func where(state *lua.State) string {
	lua.Where(state, 1)
	pos, _ := state.ToString(-1)
	state.Pop(1)
	return strings.TrimSuffix(strings.TrimSpace(pos), ":")
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

// tableToGo converts sequences to []any and everything else to a map.
func tableToGo(state *lua.State, index int) any {
	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if idx, ok := state.ToInteger(-2); ok && state.TypeOf(-2) == lua.TypeNumber && idx > 0 {
				count++
				maxIndex = max(maxIndex, idx)
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}
	return tableToMap(state, index)
}
