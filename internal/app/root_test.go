package app

import (
	"testing"
)

func TestSubcommands_Registered(t *testing.T) {
	want := map[string]bool{
		"detect [directories...]": false,
		"file <path>":             false,
		"summary [directories...]": false,
		"cache": false,
		"mcp":   false,
	}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Use]; ok {
			want[cmd.Use] = true
		}
	}
	for use, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered on rootCmd", use)
		}
	}
}

func TestCacheSubcommands_Registered(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range cacheCmd.Commands() {
		names[cmd.Use] = true
	}
	if !names["info"] || !names["clear"] {
		t.Fatalf("expected cache info and clear subcommands, got %v", names)
	}
}
