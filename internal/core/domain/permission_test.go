package domain

import "testing"

func TestCondition_Always(t *testing.T) {
	user := &User{ID: "u1", Role: RoleStudent}

	if !(Condition{}).Evaluate(user, "") {
		t.Fatalf("zero condition should always grant")
	}
	if !(Condition{Kind: CondAlways}).Evaluate(user, "anything") {
		t.Fatalf("always condition should grant for any resource id")
	}
}

func TestCondition_OwnsResource(t *testing.T) {
	user := &User{ID: "u1", EmployerID: "emp-9", Role: RoleEmployer}
	cond := Condition{Kind: CondOwnsResource, Field: "employer_id"}

	if !cond.Evaluate(user, "emp-9") {
		t.Fatalf("owner should be granted")
	}
	if cond.Evaluate(user, "emp-7") {
		t.Fatalf("non-owner should be denied")
	}
	// "no specific resource" mode: ownership cannot match.
	if cond.Evaluate(user, "") {
		t.Fatalf("ownership condition should deny without a resource id")
	}
}

func TestCondition_HasAssociation(t *testing.T) {
	cond := Condition{Kind: CondHasAssociation, Field: "university_id"}

	with := &User{ID: "u1", UniversityID: "uni-1", Role: RoleUniversityAdmin}
	without := &User{ID: "u2", Role: RoleUniversityAdmin}

	if !cond.Evaluate(with, "") {
		t.Fatalf("associated user should be granted")
	}
	if cond.Evaluate(without, "uni-1") {
		t.Fatalf("unassociated user should be denied regardless of resource id")
	}
}

func TestCondition_UnknownKind(t *testing.T) {
	cond := Condition{Kind: "mystery"}
	if cond.Evaluate(&User{ID: "u1"}, "x") {
		t.Fatalf("unknown condition kinds must deny")
	}
}

func TestRolePermissions_CoversEveryRole(t *testing.T) {
	for _, role := range []string{
		RoleStudent, RoleEmployer, RoleUniversityAdmin,
		RoleMentor, RoleAdmin, RoleSuperAdmin,
	} {
		if len(RolePermissions[role]) == 0 {
			t.Fatalf("role %s has no rules", role)
		}
	}
}

func TestRolePermissions_AtMostOneRulePerResource(t *testing.T) {
	for role, rules := range RolePermissions {
		seen := make(map[Resource]bool)
		for _, rule := range rules {
			if seen[rule.Resource] {
				t.Fatalf("role %s has duplicate rules for %s", role, rule.Resource)
			}
			seen[rule.Resource] = true
		}
	}
}
