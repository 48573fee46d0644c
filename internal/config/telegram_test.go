package config

import "testing"

func TestIsAuthorized(t *testing.T) {
	t.Parallel()
	cfg := &TelegramConfig{AuthorizedUsers: []string{"alice", "Bob"}}

	tests := []struct {
		username string
		want     bool
	}{
		{"alice", true},
		{"ALICE", true},
		{"@alice", true},
		{"bob", true},
		{"carol", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := cfg.IsAuthorized(tt.username); got != tt.want {
			t.Errorf("IsAuthorized(%q) = %v, want %v", tt.username, got, tt.want)
		}
	}
}

func TestIsAuthorized_EmptyAllowList(t *testing.T) {
	t.Parallel()
	cfg := &TelegramConfig{}
	if cfg.IsAuthorized("alice") {
		t.Error("empty allow-list must reject everyone")
	}
}
