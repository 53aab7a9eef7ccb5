package plan

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// weekRefPattern extracts the week number from "Semana N" / "Week N" titles.
var weekRefPattern = regexp.MustCompile(`(?i)(?:semana|week)\s*(\d+)`)

// Normalize maps any plan-like value, in any of the historical provider
// shapes, into the canonical model. It is total: no input, including nil,
// may make it panic, and absent data becomes defined-empty output.
func Normalize(raw interface{}) CanonicalPlan {
	m := toPlanMap(raw)

	out := CanonicalPlan{
		Title:         stringField(m, "title"),
		Subtitle:      stringField(m, "subtitle"),
		Level:         stringField(m, "level"),
		DurationWeeks: numberField(m, "durationWeeks"),
		HoursPerWeek:  numberField(m, "hoursPerWeek"),
		Description:   firstStringField(m, "summary", "description", "overview", "intro"),
		MainGoal:      firstStringField(m, "mainGoal", "goal"),
		Modules:       deriveModules(m),
		Salary:        sliceField(m, "salary"),
		Skills:        sliceField(m, "skills"),
		Roles:         sliceField(m, "roles"),
	}

	mergeBlocks(out.Modules, m)
	return out
}

// toPlanMap coerces the input into a map and unwraps a raw/source wrapper
// if present. Anything that cannot be viewed as a map becomes an empty map.
func toPlanMap(raw interface{}) map[string]interface{} {
	m, ok := asMap(raw)
	if !ok {
		m = structToMap(raw)
	}
	if m == nil {
		return map[string]interface{}{}
	}
	if inner, ok := asMap(m["raw"]); ok {
		return inner
	}
	if inner, ok := asMap(m["source"]); ok {
		return inner
	}
	return m
}

// structToMap round-trips non-map values (e.g. an already canonical plan
// struct) through JSON. Unmarshalable values yield nil.
func structToMap(raw interface{}) map[string]interface{} {
	if raw == nil {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

func deriveModules(m map[string]interface{}) []Module {
	if weeks, ok := asSlice(m["weeksPlan"]); ok {
		modules := make([]Module, 0, len(weeks))
		for i, w := range weeks {
			wm, _ := asMap(w)
			num := i + 1
			if n, ok := asNumber(wm["week"]); ok && n >= 1 {
				num = int(n)
			}
			mod := Module{
				ID:       fmt.Sprintf("week-%d", num),
				Title:    fmt.Sprintf("Semana %d", num),
				Topics:   []Topic{},
				Projects: []Project{},
			}
			if goals, ok := asSlice(wm["goals"]); ok {
				for j, g := range goals {
					if s, ok := asString(g); ok {
						mod.Topics = append(mod.Topics, Topic{
							ID:    fmt.Sprintf("t-%d-%d", num, j+1),
							Title: s,
						})
					}
				}
			}
			modules = append(modules, mod)
		}
		return modules
	}

	if mods, ok := asSlice(m["modules"]); ok {
		modules := make([]Module, 0, len(mods))
		for i, v := range mods {
			modules = append(modules, coerceModule(i, v))
		}
		return modules
	}

	return []Module{}
}

func coerceModule(i int, v interface{}) Module {
	mm, _ := asMap(v)
	mod := Module{
		ID:       stringOr(mm["id"], fmt.Sprintf("module-%d", i+1)),
		Title:    stringOr(mm["title"], ""),
		Summary:  stringOr(mm["summary"], ""),
		Topics:   []Topic{},
		Projects: []Project{},
	}

	if topics, ok := asSlice(mm["topics"]); ok {
		for j, t := range topics {
			if s, ok := asString(t); ok {
				mod.Topics = append(mod.Topics, Topic{ID: fmt.Sprintf("t-%d-%d", i+1, j+1), Title: s})
				continue
			}
			tm, ok := asMap(t)
			if !ok {
				continue
			}
			mod.Topics = append(mod.Topics, Topic{
				ID:    stringOr(tm["id"], fmt.Sprintf("t-%d-%d", i+1, j+1)),
				Title: stringOr(tm["title"], ""),
			})
		}
	}

	if projects, ok := asSlice(mm["projects"]); ok {
		for _, p := range projects {
			pm, ok := asMap(p)
			if !ok {
				continue
			}
			proj := Project{
				Title:   stringOr(pm["title"], ""),
				Summary: stringOr(pm["summary"], ""),
			}
			if h, ok := asNumber(pm["estimatedHours"]); ok {
				proj.EstimatedHours = &h
			}
			mod.Projects = append(mod.Projects, proj)
		}
	}

	return mod
}

// mergeBlocks ties each block to the module for the same week, as a project.
// A block that matches no module is dropped silently; the merge is
// intentionally lossy.
func mergeBlocks(modules []Module, m map[string]interface{}) {
	blocks, ok := asSlice(m["blocks"])
	if !ok || len(modules) == 0 {
		return
	}

	for _, b := range blocks {
		bm, ok := asMap(b)
		if !ok {
			continue
		}

		proj := Project{
			Title:   stringOr(bm["title"], ""),
			Summary: stringOr(bm["project"], ""),
		}
		if h, ok := asNumber(bm["hours"]); ok {
			proj.EstimatedHours = &h
		}

		idx := matchModuleIndex(modules, bm)
		if idx < 0 {
			continue
		}
		modules[idx].Projects = append(modules[idx].Projects, proj)
	}
}

func matchModuleIndex(modules []Module, bm map[string]interface{}) int {
	if n, ok := asNumber(bm["week"]); ok {
		w := int(n)
		if w >= 1 && w <= len(modules) {
			return w - 1
		}
		return -1
	}

	title, _ := asString(bm["title"])
	match := weekRefPattern.FindStringSubmatch(title)
	if match == nil {
		return -1
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return -1
	}

	for i, mod := range modules {
		if mm := weekRefPattern.FindStringSubmatch(mod.Title); mm != nil {
			if v, err := strconv.Atoi(mm[1]); err == nil && v == n {
				return i
			}
		}
	}
	if n >= 1 && n <= len(modules) {
		return n - 1
	}
	return -1
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok && m != nil
}

func asSlice(v interface{}) ([]interface{}, bool) {
	s, ok := v.([]interface{})
	return s, ok
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stringOr(v interface{}, fallback string) string {
	if s, ok := asString(v); ok && s != "" {
		return s
	}
	return fallback
}

func stringField(m map[string]interface{}, key string) *string {
	if s, ok := asString(m[key]); ok && strings.TrimSpace(s) != "" {
		return &s
	}
	return nil
}

func firstStringField(m map[string]interface{}, keys ...string) *string {
	for _, key := range keys {
		if p := stringField(m, key); p != nil {
			return p
		}
	}
	return nil
}

func numberField(m map[string]interface{}, key string) *float64 {
	if n, ok := asNumber(m[key]); ok {
		return &n
	}
	return nil
}

func sliceField(m map[string]interface{}, key string) []interface{} {
	if s, ok := asSlice(m[key]); ok && s != nil {
		return s
	}
	return []interface{}{}
}
