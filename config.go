package main

import (
	"flag"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"
)

const (
	defaultDatabaseFile = "templates.db"
	defaultTimeZone     = "Asia/Singapore"
)

type config struct {
	Token        string
	DatabaseFile string
	Location     *time.Location
	Debug        bool
}

// parseConfig reads the flags in args. Flags left unset fall back to the
// environment, then to the defaults.
func parseConfig(fs *flag.FlagSet, args []string) (config, error) {
	token := fs.String("token", "", "telegram bot token, ask @BotFather (env BOT_TOKEN)")
	databaseFile := fs.String("db", "", "sqlite database file (env TEMPLATEBOT_DB)")
	timeZone := fs.String("tz", "", "time zone for date format codes (env TEMPLATEBOT_TZ)")
	debug := fs.Bool("debug", false, "Show debug information")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	cfg := config{
		Token:        firstNonEmpty(*token, os.Getenv("BOT_TOKEN")),
		DatabaseFile: firstNonEmpty(*databaseFile, os.Getenv("TEMPLATEBOT_DB"), defaultDatabaseFile),
		Debug:        *debug,
	}
	if cfg.Token == "" {
		return cfg, fmt.Errorf("token flag required. Go ask @BotFather")
	}

	tz := firstNonEmpty(*timeZone, os.Getenv("TEMPLATEBOT_TZ"), defaultTimeZone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return cfg, fmt.Errorf("could not load time zone %q: %v", tz, err)
	}
	cfg.Location = loc
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
