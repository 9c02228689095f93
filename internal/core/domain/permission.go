package domain

// Resource names a protectable class of domain objects. Closed set.
type Resource string

const (
	ResourceAnalytics      Resource = "analytics"
	ResourceStudents       Resource = "students"
	ResourceCourses        Resource = "courses"
	ResourceJobs           Resource = "jobs"
	ResourceEvents         Resource = "events"
	ResourceMentorship     Resource = "mentorship"
	ResourceUniversities   Resource = "universities"
	ResourceEmployers      Resource = "employers"
	ResourceSystemSettings Resource = "system_settings"
)

// Action names an operation on a resource. Closed set.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionManage Action = "manage"
	ActionExport Action = "export"
)

// ConditionKind tags the rule condition interpreter. Conditions are plain
// data rather than closures so the rule table stays serializable and each
// kind can be unit-tested in isolation.
type ConditionKind string

const (
	// CondAlways grants unconditionally. A rule with a zero Condition
	// behaves the same way.
	CondAlways ConditionKind = "always"
	// CondOwnsResource grants only when the user's association field
	// equals the requested resource ID.
	CondOwnsResource ConditionKind = "owns_resource"
	// CondHasAssociation grants when the user's association field is
	// non-empty, regardless of the requested resource ID.
	CondHasAssociation ConditionKind = "has_association"
)

// Condition gates a rule on a property of the requesting user.
type Condition struct {
	Kind  ConditionKind `json:"kind"`
	Field string        `json:"field,omitempty"`
}

// Evaluate runs the condition against a user and an optional resource ID.
// An empty resourceID means "no specific resource": ownership conditions
// cannot match in that mode and evaluate to false.
func (c Condition) Evaluate(user *User, resourceID string) bool {
	switch c.Kind {
	case "", CondAlways:
		return true
	case CondOwnsResource:
		v := user.Association(c.Field)
		return v != "" && v == resourceID
	case CondHasAssociation:
		return user.Association(c.Field) != ""
	default:
		return false
	}
}

// AccessRule grants a set of actions on one resource, optionally gated by
// a condition.
type AccessRule struct {
	Resource  Resource  `json:"resource"`
	Actions   []Action  `json:"actions"`
	Condition Condition `json:"condition,omitempty"`
}

// Allows reports whether the rule's action set contains the given action.
func (r AccessRule) Allows(action Action) bool {
	for _, a := range r.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// RolePermissions maps every role to its ordered rule list. Built once at
// process start, read-only thereafter. At most one rule per resource per
// role; lookups take the first match in list order.
var RolePermissions = map[string][]AccessRule{
	RoleStudent: {
		{Resource: ResourceCourses, Actions: []Action{ActionView}},
		{Resource: ResourceJobs, Actions: []Action{ActionView}},
		{Resource: ResourceEvents, Actions: []Action{ActionView}},
		{Resource: ResourceMentorship, Actions: []Action{ActionView, ActionCreate}},
		{Resource: ResourceStudents, Actions: []Action{ActionView, ActionEdit},
			Condition: Condition{Kind: CondOwnsResource, Field: "id"}},
	},
	RoleEmployer: {
		{Resource: ResourceJobs, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionManage},
			Condition: Condition{Kind: CondHasAssociation, Field: "employer_id"}},
		{Resource: ResourceStudents, Actions: []Action{ActionView}},
		{Resource: ResourceEvents, Actions: []Action{ActionView, ActionCreate}},
		{Resource: ResourceAnalytics, Actions: []Action{ActionView, ActionExport},
			Condition: Condition{Kind: CondHasAssociation, Field: "employer_id"}},
		{Resource: ResourceEmployers, Actions: []Action{ActionView, ActionEdit},
			Condition: Condition{Kind: CondOwnsResource, Field: "employer_id"}},
	},
	RoleUniversityAdmin: {
		{Resource: ResourceStudents, Actions: []Action{ActionView, ActionEdit, ActionManage, ActionExport},
			Condition: Condition{Kind: CondHasAssociation, Field: "university_id"}},
		{Resource: ResourceCourses, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionManage}},
		{Resource: ResourceEvents, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionManage}},
		{Resource: ResourceAnalytics, Actions: []Action{ActionView, ActionExport},
			Condition: Condition{Kind: CondHasAssociation, Field: "university_id"}},
		{Resource: ResourceUniversities, Actions: []Action{ActionView, ActionEdit},
			Condition: Condition{Kind: CondOwnsResource, Field: "university_id"}},
	},
	RoleMentor: {
		{Resource: ResourceMentorship, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionManage},
			Condition: Condition{Kind: CondHasAssociation, Field: "mentor_id"}},
		{Resource: ResourceStudents, Actions: []Action{ActionView}},
		{Resource: ResourceCourses, Actions: []Action{ActionView}},
		{Resource: ResourceEvents, Actions: []Action{ActionView}},
	},
	RoleAdmin: {
		{Resource: ResourceAnalytics, Actions: []Action{ActionView, ActionExport}},
		{Resource: ResourceStudents, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionManage}},
		{Resource: ResourceCourses, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionManage}},
		{Resource: ResourceJobs, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionManage}},
		{Resource: ResourceEvents, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionManage}},
		{Resource: ResourceMentorship, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionManage}},
		{Resource: ResourceUniversities, Actions: []Action{ActionView, ActionEdit, ActionManage}},
		{Resource: ResourceEmployers, Actions: []Action{ActionView, ActionEdit, ActionManage}},
		{Resource: ResourceSystemSettings, Actions: []Action{ActionView}},
	},
	RoleSuperAdmin: {
		{Resource: ResourceAnalytics, Actions: []Action{ActionView, ActionExport}},
		{Resource: ResourceStudents, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionManage, ActionExport}},
		{Resource: ResourceCourses, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionManage}},
		{Resource: ResourceJobs, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionManage}},
		{Resource: ResourceEvents, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionManage}},
		{Resource: ResourceMentorship, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionManage}},
		{Resource: ResourceUniversities, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionManage}},
		{Resource: ResourceEmployers, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionManage}},
		{Resource: ResourceSystemSettings, Actions: []Action{ActionView, ActionEdit, ActionManage}},
	},
}
