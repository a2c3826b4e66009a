package main

import (
	"bytes"
	"testing"
)

func TestRootCommand(t *testing.T) {
	cmd := rootCmd

	if cmd == nil {
		t.Fatal("Expected root command to be created")
	}

	if cmd.Use != "evi" {
		t.Errorf("Expected root command use to be 'evi', got %s", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{
		"score",
		"sensitivity",
		"validate",
		"version",
	}

	registered := rootCmd.Commands()
	for _, expectedCmd := range expectedCommands {
		found := false
		for _, c := range registered {
			if c.Name() == expectedCmd {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected command '%s' to be registered with root command", expectedCmd)
		}
	}
}

func TestRootCommand_Help(t *testing.T) {
	cmd := rootCmd
	cmd.SetArgs([]string{"--help"})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	if err := cmd.Execute(); err != nil {
		t.Errorf("Expected no error for help command, got %v", err)
	}

	if buf.String() == "" {
		t.Error("Expected help command to show help text")
	}
}

func TestScoreCommand_Flags(t *testing.T) {
	for _, name := range []string{"format", "no-sensitivity", "debug", "logistic-a", "logistic-b"} {
		if scoreCmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected score command to define flag '%s'", name)
		}
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	cmd := rootCmd
	cmd.SetArgs([]string{"invalid-command"})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for invalid command")
	}
}
