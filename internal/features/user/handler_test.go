package user

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseProfilePatch(t *testing.T) {
	input, err := parseProfilePatch(map[string]interface{}{
		"firstName":  "  Ada  ",
		"occupation": "Engineer",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := "Ada"
	occupation := "Engineer"
	want := UpdateInput{FirstName: &first, Occupation: &occupation}
	if diff := cmp.Diff(want, input); diff != "" {
		t.Errorf("parseProfilePatch mismatch (-want +got):\n%s", diff)
	}
}

func TestParseProfilePatchIgnoresAbsentFields(t *testing.T) {
	input, err := parseProfilePatch(map[string]interface{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.FirstName != nil || input.LastName != nil || input.MiddleName != nil ||
		input.Occupation != nil || input.Photo != nil {
		t.Errorf("empty body should touch no fields: %+v", input)
	}
}

func TestParseProfilePatchRejectsWrongTypes(t *testing.T) {
	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"numeric first name", map[string]interface{}{"firstName": 42.0}},
		{"boolean photo", map[string]interface{}{"photo": true}},
		{"blank last name", map[string]interface{}{"lastName": "   "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseProfilePatch(tc.body); err == nil {
				t.Error("expected error for malformed field")
			}
		})
	}
}
