package plan

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Validate checks a plan request and collects every violation instead of
// stopping at the first one. An empty problem list means req is usable.
func Validate(dto PlanRequestDTO) (PlanRequest, []string) {
	var problems []string
	var req PlanRequest

	req.Objective = strings.TrimSpace(dto.Objective)
	if req.Objective == "" {
		problems = append(problems, "objective debe ser un texto no vacío")
	}

	req.Level = strings.TrimSpace(dto.Level)
	if req.Level == "" {
		problems = append(problems, "level debe ser un texto no vacío")
	}

	hours, ok := parseNumber(dto.HoursPerWeek)
	if !ok || !isFinite(hours) || hours <= 0 {
		problems = append(problems, "hoursPerWeek debe ser un número mayor que 0")
	} else {
		req.HoursPerWeek = hours
	}

	weeks, ok := parseNumber(dto.Weeks)
	if !ok || !isFinite(weeks) || weeks <= 0 || weeks != math.Trunc(weeks) {
		problems = append(problems, "weeks debe ser un entero mayor que 0")
	} else {
		req.Weeks = int(weeks)
	}

	if len(problems) > 0 {
		return PlanRequest{}, problems
	}
	return req, nil
}

// parseNumber coerces the loosely typed JSON values clients send for numeric
// fields: numbers, numeric strings, or json.Number.
func parseNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
