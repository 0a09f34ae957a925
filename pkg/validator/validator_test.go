package validator

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidateCreateUser(t *testing.T) {
	tests := []struct {
		name       string
		user       [4]string
		wantFields []string
	}{
		{name: "valid", user: [4]string{"Ann", "ann@x.com", "longenough1", "A"}},
		{name: "blank name", user: [4]string{"   ", "ann@x.com", "longenough1", "A"}, wantFields: []string{"name"}},
		{name: "long name", user: [4]string{strings.Repeat("a", 101), "ann@x.com", "longenough1", "A"}, wantFields: []string{"name"}},
		{name: "name at limit", user: [4]string{strings.Repeat("ж", 100), "ann@x.com", "longenough1", "F"}},
		{name: "padded name over limit", user: [4]string{strings.Repeat(" ", 150) + "Ann", "ann@x.com", "longenough1", "A"}, wantFields: []string{"name"}},
		{name: "email at limit", user: [4]string{"Ann", strings.Repeat("a", 249) + "@x.com", "longenough1", "A"}},
		{name: "long email", user: [4]string{"Ann", strings.Repeat("a", 300) + "@x.com", "longenough1", "A"}, wantFields: []string{"email"}},
		{name: "bad email", user: [4]string{"Ann", "ann", "longenough1", "A"}, wantFields: []string{"email"}},
		{name: "email without tld", user: [4]string{"Ann", "ann@x", "longenough1", "A"}, wantFields: []string{"email"}},
		{name: "email with display name", user: [4]string{"Ann", "Ann <ann@x.com>", "longenough1", "A"}, wantFields: []string{"email"}},
		{name: "missing password", user: [4]string{"Ann", "ann@x.com", "", "A"}, wantFields: []string{"password"}},
		{name: "short password", user: [4]string{"Ann", "ann@x.com", "short", "A"}, wantFields: []string{"password"}},
		{name: "long password", user: [4]string{"Ann", "ann@x.com", strings.Repeat("p", 101), "A"}, wantFields: []string{"password"}},
		{name: "bad skill", user: [4]string{"Ann", "ann@x.com", "longenough1", "G"}, wantFields: []string{"skillLevel"}},
		{name: "everything wrong", user: [4]string{"", "", "", ""}, wantFields: []string{"name", "email", "password", "skillLevel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCreateUser(tt.user[0], tt.user[1], tt.user[2], tt.user[3])

			var got []string
			for _, fe := range errs {
				got = append(got, fe.Field)
			}
			if diff := cmp.Diff(tt.wantFields, got); diff != "" {
				t.Fatalf("fields mismatch (-want +got):\n%s", diff)
			}
			require.Equal(t, len(tt.wantFields) > 0, errs.HasErrors())
		})
	}
}

func TestValidateUpdateUser_AbsentFieldsAreSkipped(t *testing.T) {
	errs := ValidateUpdateUser(nil, nil, nil, nil)
	require.False(t, errs.HasErrors())

	errs = ValidateUpdateUser(nil, nil, nil, strPtr("B"))
	require.False(t, errs.HasErrors())
}

func TestValidateUpdateUser_PresentFieldsFollowCreateRules(t *testing.T) {
	errs := ValidateUpdateUser(strPtr(""), strPtr("nope"), strPtr("short"), strPtr("Z"))

	want := ValidationErrors{
		{Field: "name", Message: "Name is required"},
		{Field: "email", Message: "Invalid email address"},
		{Field: "password", Message: "Password must be at least 8 characters"},
		{Field: "skillLevel", Message: "Skill level must be one of A, B, C, D, E, F"},
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateUpdateUser_LengthLimits(t *testing.T) {
	errs := ValidateUpdateUser(strPtr(strings.Repeat(" ", 99)+"Ann"), strPtr(strings.Repeat("a", 300)+"@x.com"), nil, nil)

	want := ValidationErrors{
		{Field: "name", Message: "Name must be at most 100 characters"},
		{Field: "email", Message: "Email must be at most 255 characters"},
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateUserID(t *testing.T) {
	id, errs := ValidateUserID("3f1c7e0a-6a7b-4bb4-9b55-0d4f3c0f7a11")
	require.False(t, errs.HasErrors())
	require.Equal(t, "3f1c7e0a-6a7b-4bb4-9b55-0d4f3c0f7a11", id.String())

	_, errs = ValidateUserID("not-a-uuid")
	require.True(t, errs.HasErrors())
	require.Equal(t, "id", errs[0].Field)
}

func TestValidationErrors_Fields_KeepsFirstMessage(t *testing.T) {
	var errs ValidationErrors
	errs.Add("email", "first")
	errs.Add("email", "second")
	errs.Add("name", "bad")

	require.Equal(t, map[string]string{"email": "first", "name": "bad"}, errs.Fields())
}
