package validation

import "testing"

func TestNormalizeForumName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Chess Club", "Chess Club", false},
		{"  Chess Club  ", "Chess Club", false},
		{"go-devs", "go-devs", false},
		{"3D Printing", "3D Printing", false},
		{"ab", "", true},
		{"", "", true},
		{"   ", "", true},
		{"-leading-dash", "", true},
		{"name<script>", "", true},
	}

	for _, tc := range cases {
		got, err := NormalizeForumName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NormalizeForumName(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeForumName(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeForumName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeForumNamePreservesCase(t *testing.T) {
	// Name collisions are case-sensitive, so normalization must not fold case.
	got, err := NormalizeForumName("Chess Club")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Chess Club" {
		t.Errorf("case was altered: %q", got)
	}
}
