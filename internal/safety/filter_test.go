package safety

import (
	"testing"
)

func Test_Filter_IsAllowed_Cases(t *testing.T) {
	tests := []struct {
		name      string
		allowlist []string
		denylist  []string
		resource  string
		want      bool
	}{
		{
			name:     "nil lists allow everything",
			resource: "Celeste",
			want:     true,
		},
		{
			name:      "in allowlist is allowed",
			allowlist: []string{"Celeste", "Hades"},
			resource:  "Hades",
			want:      true,
		},
		{
			name:      "not in allowlist is denied",
			allowlist: []string{"Celeste", "Hades"},
			resource:  "Tetris",
			want:      false,
		},
		{
			name:     "in denylist is denied",
			denylist: []string{"Chrono Trigger"},
			resource: "Chrono Trigger",
			want:     false,
		},
		{
			name:      "denylist wins over allowlist",
			allowlist: []string{"Chrono*"},
			denylist:  []string{"Chrono Cross"},
			resource:  "Chrono Cross",
			want:      false,
		},
		{
			name:      "allowlist glob matches",
			allowlist: []string{"Chrono*"},
			denylist:  []string{"Chrono Cross"},
			resource:  "Chrono Trigger",
			want:      true,
		},
		{
			name:     "matching ignores case",
			denylist: []string{"zelda*"},
			resource: "Zelda: Breath of the Wild",
			want:     false,
		},
		{
			name:      "pattern case ignored in allowlist",
			allowlist: []string{"HADES"},
			resource:  "hades",
			want:      true,
		},
		{
			name:     "malformed pattern never matches",
			denylist: []string{"[abc"},
			resource: "[abc",
			want:     true,
		},
		{
			name:      "empty title against allowlist is denied",
			allowlist: []string{"?*"},
			resource:  "",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(tt.allowlist, tt.denylist)
			if got := f.IsAllowed(tt.resource); got != tt.want {
				t.Errorf("IsAllowed(%q) = %v, want %v", tt.resource, got, tt.want)
			}
		})
	}
}

func Test_Filter_NilFilter_AllowsAll(t *testing.T) {
	var f *Filter
	if !f.IsAllowed("anything") {
		t.Error("nil Filter should allow everything")
	}
}

func Test_NewFilter_DoesNotAliasInput(t *testing.T) {
	deny := []string{"Hades"}
	f := NewFilter(nil, deny)
	deny[0] = "Other"
	if f.IsAllowed("Hades") {
		t.Error("filter changed after mutating the input slice")
	}
}
