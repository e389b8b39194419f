package roles

import "testing"

func TestHasPermissionLadder(t *testing.T) {
	cases := []struct {
		actual   string
		required string
		want     bool
	}{
		{Boss, Boss, true},
		{Boss, User, true},
		{Leader, Boss, false},
		{User, Boss, false},
		{User, User, true},
		{Engineer1, Engineer3, true},
		{Engineer3, Engineer1, false},
		{EngineerP, Leader, false},
	}
	for _, tc := range cases {
		if got := HasPermission(tc.actual, tc.required); got != tc.want {
			t.Errorf("HasPermission(%q, %q) = %v, want %v", tc.actual, tc.required, got, tc.want)
		}
	}
}

func TestHasPermissionFailsClosed(t *testing.T) {
	if HasPermission("admin", User) {
		t.Fatalf("unknown actual role must deny")
	}
	if HasPermission(Boss, "cosmonaut") {
		t.Fatalf("unknown required role must deny")
	}
	if HasPermission("", "") {
		t.Fatalf("empty roles must deny")
	}
}

func TestNormalizeAndValidity(t *testing.T) {
	if got := Normalize("  Boss "); got != Boss {
		t.Fatalf("Normalize: got %q", got)
	}
	if !IsValid("LEADER") {
		t.Fatalf("case-insensitive tags must validate")
	}
	if IsValid("intern") {
		t.Fatalf("unknown tag must not validate")
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("boss"); got != "Supervisor" {
		t.Fatalf("DisplayName(boss) = %q", got)
	}
	// Unknown tags pass through untouched; display only.
	if got := DisplayName("mystery"); got != "mystery" {
		t.Fatalf("DisplayName(mystery) = %q", got)
	}
}
