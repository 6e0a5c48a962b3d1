package main

import (
	"strconv"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/streakly/internal/constants"
)

func TestNeedsLoad(t *testing.T) {
	tests := []struct {
		command string
		want    bool
	}{
		{"init", false},
		{"migrate", false},
		{"doctor", false},
		{"keyring set <connection-string>", false},
		{"keyring status", false},
		{"backup restore <backup-file>", false},
		{"backup create", true},
		{"water add <glasses>", true},
		{"tui", true},
		{"initialize", true},
	}
	for _, tt := range tests {
		if got := needsLoad(tt.command); got != tt.want {
			t.Errorf("needsLoad(%q) = %v, want %v", tt.command, got, tt.want)
		}
	}
}

func TestParseCommands(t *testing.T) {
	parser, err := kong.New(&CLI,
		kong.Name(constants.AppName),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
		kong.Vars{
			"version":        constants.Version,
			"step_increment": strconv.Itoa(constants.StepIncrement),
		},
	)
	if err != nil {
		t.Fatalf("failed to build parser: %v", err)
	}

	tests := []struct {
		args []string
		want string
	}{
		{[]string{}, "tui"},
		{[]string{"water"}, "water add"},
		{[]string{"water", "3"}, "water add <glasses>"},
		{[]string{"steps", "remove"}, "steps remove"},
		{[]string{"meal", "add", "--name", "Soup", "--calories", "220"}, "meal add"},
		{[]string{"profile"}, "profile show"},
		{[]string{"backup", "restore", "streakly-20261019-080000.db", "-y"}, "backup restore <backup-file>"},
	}
	for _, tt := range tests {
		kctx, err := parser.Parse(tt.args)
		if err != nil {
			t.Errorf("Parse(%v) failed: %v", tt.args, err)
			continue
		}
		if got := kctx.Command(); got != tt.want {
			t.Errorf("Parse(%v) command = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestStepsDefaultIncrement(t *testing.T) {
	parser, err := kong.New(&CLI, kong.Vars{
		"version":        constants.Version,
		"step_increment": strconv.Itoa(constants.StepIncrement),
	})
	if err != nil {
		t.Fatalf("failed to build parser: %v", err)
	}
	if _, err := parser.Parse([]string{"steps", "add"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if CLI.Steps.Add.Steps != constants.StepIncrement {
		t.Errorf("default steps = %d, want %d", CLI.Steps.Add.Steps, constants.StepIncrement)
	}
}
