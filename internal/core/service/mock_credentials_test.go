package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
)

func TestMockVerify_RejectsEmptyCredentials(t *testing.T) {
	v := NewMockCredentialVerifier()
	ctx := context.Background()

	for _, pair := range [][2]string{{"", ""}, {"alice", ""}, {"", "secret"}} {
		if _, err := v.Verify(ctx, pair[0], pair[1]); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("(%q, %q): expected ErrInvalidCredentials, got %v", pair[0], pair[1], err)
		}
	}
}

func TestMockVerify_RoleInference(t *testing.T) {
	v := NewMockCredentialVerifier()
	ctx := context.Background()

	cases := []struct {
		username string
		want     []string
	}{
		{"alice", []string{"user"}},
		{"student_bob", []string{"user", domain.RoleStudent}},
		{"ACME-Employer", []string{"user", domain.RoleEmployer}},
		{"university.ops", []string{"user", domain.RoleUniversityAdmin}},
		{"site-admin", []string{"user", domain.RoleAdmin}},
		{"admin_student", []string{"user", domain.RoleAdmin, domain.RoleStudent}},
	}
	for _, tc := range cases {
		got, err := v.Verify(ctx, tc.username, "anything")
		if err != nil {
			t.Fatalf("%s: %v", tc.username, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.username, tc.want, got)
		}
	}
}
