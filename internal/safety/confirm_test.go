package safety

import (
	"sync"
	"testing"
	"time"
)

func Test_ConfirmationTracker_NeedsConfirmation_Cases(t *testing.T) {
	ct := NewConfirmationTracker([]string{"games_delete"})

	tests := []struct {
		name string
		tool string
		want bool
	}{
		{name: "destructive tool needs confirmation", tool: "games_delete", want: true},
		{name: "read tool does not", tool: "games_list", want: false},
		{name: "additive tool does not", tool: "games_add", want: false},
		{name: "empty tool name does not", tool: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ct.NeedsConfirmation(tt.tool); got != tt.want {
				t.Errorf("NeedsConfirmation(%q) = %v, want %v", tt.tool, got, tt.want)
			}
		})
	}
}

func Test_ConfirmationTracker_NilDestructiveList(t *testing.T) {
	ct := NewConfirmationTracker(nil)
	if ct.NeedsConfirmation("games_delete") {
		t.Error("with nil destructive tools, nothing should need confirmation")
	}
}

// ---------------------------------------------------------------------------
// Confirm
// ---------------------------------------------------------------------------

func Test_ConfirmationTracker_Confirm_Cases(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		resource string
		want     bool
	}{
		{name: "matching tool and resource", tool: "games_delete", resource: "7", want: true},
		{name: "different resource", tool: "games_delete", resource: "8", want: false},
		{name: "different tool", tool: "games_add", resource: "7", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct := NewConfirmationTracker([]string{"games_delete"})
			token := ct.RequestConfirmation("games_delete", "7", "Delete game 7")
			if got := ct.Confirm(token, tt.tool, tt.resource); got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
			if ct.Pending() != 0 {
				t.Errorf("Pending() = %d after Confirm, want 0", ct.Pending())
			}
		})
	}
}

func Test_ConfirmationTracker_Confirm_SingleUse(t *testing.T) {
	ct := NewConfirmationTracker([]string{"games_delete"})
	token := ct.RequestConfirmation("games_delete", "1", "Delete game 1")

	if !ct.Confirm(token, "games_delete", "1") {
		t.Fatal("first Confirm() = false, want true")
	}
	if ct.Confirm(token, "games_delete", "1") {
		t.Error("second Confirm() = true, want false")
	}
}

func Test_ConfirmationTracker_Confirm_UnknownAndEmpty(t *testing.T) {
	ct := NewConfirmationTracker([]string{"games_delete"})
	if ct.Confirm("", "games_delete", "1") {
		t.Error("Confirm(\"\") = true, want false")
	}
	if ct.Confirm("deadbeef", "games_delete", "1") {
		t.Error("Confirm(unknown) = true, want false")
	}
}

func Test_ConfirmationTracker_Confirm_Expired(t *testing.T) {
	ct := NewConfirmationTracker([]string{"games_delete"})
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ct.now = func() time.Time { return base }

	token := ct.RequestConfirmation("games_delete", "1", "Delete game 1")
	ct.now = func() time.Time { return base.Add(tokenTTL + time.Second) }

	if ct.Confirm(token, "games_delete", "1") {
		t.Error("Confirm() on expired token = true, want false")
	}
}

func Test_ConfirmationTracker_RequestSweepsExpired(t *testing.T) {
	ct := NewConfirmationTracker([]string{"games_delete"})
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ct.now = func() time.Time { return base }
	ct.RequestConfirmation("games_delete", "1", "old")

	ct.now = func() time.Time { return base.Add(tokenTTL + time.Minute) }
	ct.RequestConfirmation("games_delete", "2", "new")

	if got := ct.Pending(); got != 1 {
		t.Errorf("Pending() = %d, want 1", got)
	}
}

func Test_ConfirmationTracker_TokensAreUnique(t *testing.T) {
	ct := NewConfirmationTracker([]string{"games_delete"})
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := ct.RequestConfirmation("games_delete", "1", "")
		if len(token) != 32 {
			t.Fatalf("token length = %d, want 32", len(token))
		}
		if seen[token] {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = true
	}
}

func Test_ConfirmationTracker_Concurrent(t *testing.T) {
	ct := NewConfirmationTracker([]string{"games_delete"})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token := ct.RequestConfirmation("games_delete", "x", "")
			if !ct.Confirm(token, "games_delete", "x") {
				t.Error("Confirm() = false for fresh token")
			}
		}()
	}
	wg.Wait()
	if ct.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", ct.Pending())
	}
}
