package main

import (
	"flag"
	"io"
	"testing"
)

func newTestFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("templatebot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("TEMPLATEBOT_DB", "")
	t.Setenv("TEMPLATEBOT_TZ", "")

	cfg, err := parseConfig(newTestFlagSet(), []string{"-token", "abc"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Token != "abc" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.DatabaseFile != defaultDatabaseFile {
		t.Errorf("DatabaseFile = %q, expected %q", cfg.DatabaseFile, defaultDatabaseFile)
	}
	if cfg.Location.String() != defaultTimeZone {
		t.Errorf("Location = %v, expected %s", cfg.Location, defaultTimeZone)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
}

func TestParseConfigEnvironmentFallback(t *testing.T) {
	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("TEMPLATEBOT_DB", "env.db")
	t.Setenv("TEMPLATEBOT_TZ", "UTC")

	cfg, err := parseConfig(newTestFlagSet(), []string{"-db", "flag.db", "-debug"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Token != "from-env" {
		t.Errorf("Token = %q, expected the environment value", cfg.Token)
	}
	if cfg.DatabaseFile != "flag.db" {
		t.Errorf("DatabaseFile = %q, expected the flag to win", cfg.DatabaseFile)
	}
	if cfg.Location.String() != "UTC" {
		t.Errorf("Location = %v", cfg.Location)
	}
	if !cfg.Debug {
		t.Error("Debug flag not applied")
	}
}

func TestParseConfigErrors(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("TEMPLATEBOT_TZ", "")

	if _, err := parseConfig(newTestFlagSet(), nil); err == nil {
		t.Error("expected a missing token to fail")
	}
	if _, err := parseConfig(newTestFlagSet(), []string{"-token", "x", "-tz", "Nowhere/Special"}); err == nil {
		t.Error("expected an unknown time zone to fail")
	}
	if _, err := parseConfig(newTestFlagSet(), []string{"-nope"}); err == nil {
		t.Error("expected an unknown flag to fail")
	}
}
