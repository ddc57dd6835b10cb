// Package scenario runs scripted, headless house guard sessions.
//
// A scenario is a Lua script that builds a Scenario value and returns it:
//
//	local s = Scenario.new("letter turns everyone back")
//	s:config({ letter_delay_ms = 500 })
//	s:send_letter()
//	s:wait(0.6)
//	s:expect_all_agents({ mode = "retreating" })
//	return s
//
// Steps are recorded while the script runs and executed afterwards by Run
// against a fresh session stepped with a fixed tick.
package scenario

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrAssertion is wrapped by the error Run returns when expectations fail.
var ErrAssertion = errors.New("scenario assertion failed")

// Scenario is a named list of steps with optional config overrides.
type Scenario struct {
	Name   string
	Config map[string]any
	Steps  []Step
}

// Step is one recorded scenario instruction.
type Step struct {
	Kind  string
	Args  map[string]any
	Where string // chunk:line of the call, if known
}

func (s Step) String() string {
	if s.Where != "" {
		return s.Where + " " + s.Kind
	}
	return s.Kind
}

func appendStep(sc *Scenario, kind, where string, args map[string]any) {
	if args == nil {
		args = map[string]any{}
	}
	sc.Steps = append(sc.Steps, Step{Kind: kind, Args: args, Where: where})
}

func numberArg(args map[string]any, key string) (float64, bool) {
	switch v := args[key].(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key].(string)
	return v, ok
}

func boolArg(args map[string]any, key string) (bool, bool) {
	v, ok := args[key].(bool)
	return v, ok
}

// stringList accepts a single string or a Lua array of strings.
func stringList(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	case map[string]any:
		if len(t) == 0 {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected string or list of strings, got %T", v)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 && math.Abs(value) < 1<<53 {
		return int(value)
	}
	return value
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
