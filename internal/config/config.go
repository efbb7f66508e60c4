package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Application struct {
	Host     string   `koanf:"host"`
	Port     int      `koanf:"port"`
	App      App      `koanf:"app"`
	Refresh  Refresh  `koanf:"refresh"`
	Database Database `koanf:"db"`
}

type App struct {
	// Timezone is an IANA name used for calendar day/week/month boundaries.
	Timezone string `koanf:"timezone"`
	// WeekStart is the english name of the first day of the week.
	WeekStart string `koanf:"weekstart"`
	Currency  string `koanf:"currency"`
}

type Refresh struct {
	Interval time.Duration `koanf:"interval"`
}

type Database struct {
	Driver string `koanf:"driver"`
	// Path is the SQLite database file.
	Path   string `koanf:"path"`
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Defaults() Application {
	return Application{
		Host: "http://localhost:3000",
		Port: 8181,
		App: App{
			Timezone:  "Local",
			WeekStart: "sunday",
			Currency:  "PKR",
		},
		Refresh: Refresh{
			Interval: 30 * time.Second,
		},
		Database: Database{
			Driver: DriverSQLite,
			Path:   "./data/pocketledger.db",
			Host:   "localhost",
			Port:   5432,
			User:   "pocketledger",
			Pass:   "",
			Name:   "pocketledger",
			Schema: "public",
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "POCKETLEDGER_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "POCKETLEDGER_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	if err := app.Validate(); err != nil {
		return Application{}, err
	}

	return app, nil
}

// Validate reports every configuration problem at once.
func (a Application) Validate() error {
	var problems []string

	if a.Port < 1 || a.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", a.Port))
	}
	if _, err := a.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("invalid timezone '%s': %v", a.App.Timezone, err))
	}
	if _, err := a.WeekStartDay(); err != nil {
		problems = append(problems, err.Error())
	}
	if strings.TrimSpace(a.App.Currency) == "" {
		problems = append(problems, "currency label cannot be empty")
	}
	if a.Refresh.Interval < time.Second {
		problems = append(problems, fmt.Sprintf("invalid refresh interval %v: must be at least 1 second", a.Refresh.Interval))
	}

	switch a.Database.Driver {
	case DriverSQLite:
		if a.Database.Path == "" {
			problems = append(problems, "sqlite database path cannot be empty")
		}
	case DriverPostgres:
		if a.Database.Host == "" || a.Database.Name == "" {
			problems = append(problems, "postgres host and database name are required")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid db driver '%s': must be one of [%s %s]", a.Database.Driver, DriverSQLite, DriverPostgres))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func (a Application) Location() (*time.Location, error) {
	return time.LoadLocation(a.App.Timezone)
}

func (a Application) WeekStartDay() (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(a.App.WeekStart))
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.ToLower(day.String()) == name {
			return day, nil
		}
	}
	return time.Sunday, errors.New("invalid week start '" + a.App.WeekStart + "': must be a weekday name")
}
