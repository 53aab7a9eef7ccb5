package plan

// RawPlan is the unstructured generation output. The completion provider has
// historically produced at least two incompatible shapes (a blocks-shape and a
// weeksPlan-shape), so the raw plan stays untyped at the boundary and all
// shape-specific logic lives in the normalizer.
type RawPlan = map[string]interface{}

// PlanRequestDTO is the incoming request body. Numeric fields are accepted as
// JSON numbers or strings; the validator coerces them.
type PlanRequestDTO struct {
	Objective    string      `json:"objective"`
	Level        string      `json:"level"`
	HoursPerWeek interface{} `json:"hoursPerWeek"`
	Weeks        interface{} `json:"weeks"`
}

// PlanRequest is a validated plan request. Created once, never mutated.
type PlanRequest struct {
	Objective    string
	Level        string
	HoursPerWeek float64
	Weeks        int
}

// RoutingHints carries the per-request fallback overrides. The process-wide
// switch lives in config; the handler collapses query and header into this
// value so the orchestrator evaluates a single precedence order.
type RoutingHints struct {
	QueryMock  bool
	HeaderMock bool
}

// Mock reports whether either per-request override forces fallback generation.
func (h RoutingHints) Mock() bool {
	return h.QueryMock || h.HeaderMock
}

// CanonicalPlan is the normalized, shape-independent model consumed by all
// rendering surfaces. Scalar fields are null when the source plan omits them;
// slice fields are always non-nil.
type CanonicalPlan struct {
	Title         *string       `json:"title"`
	Subtitle      *string       `json:"subtitle"`
	Level         *string       `json:"level"`
	DurationWeeks *float64      `json:"durationWeeks"`
	HoursPerWeek  *float64      `json:"hoursPerWeek"`
	Description   *string       `json:"description"`
	MainGoal      *string       `json:"mainGoal"`
	Modules       []Module      `json:"modules"`
	Salary        []interface{} `json:"salary"`
	Skills        []interface{} `json:"skills"`
	Roles         []interface{} `json:"roles"`
}

// Module is one unit of study in a canonical plan.
type Module struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Summary  string    `json:"summary"`
	Topics   []Topic   `json:"topics"`
	Projects []Project `json:"projects"`
}

// Topic is a single learning goal inside a module.
type Topic struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Project is a practice project attached to a module.
type Project struct {
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	EstimatedHours *float64 `json:"estimatedHours"`
}
