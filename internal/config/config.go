package config

import (
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

// Backend names accepted in Storage.Backend.
const (
	BackendLocal    = "local"
	BackendPostgres = "postgres"
)

type Application struct {
	Host     string   `koanf:"host"`
	HTTP     HTTP     `koanf:"http"`
	Frontend Frontend `koanf:"frontend"`
	Auth     Auth     `koanf:"auth"`
	Storage  Storage  `koanf:"storage"`
	Database Database `koanf:"db"`
}

type HTTP struct {
	Addr string `koanf:"addr"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Auth struct {
	SessionSecret   string        `koanf:"sessionsecret"`
	SessionValidity time.Duration `koanf:"sessionvalidity"`
	Google          Google        `koanf:"google"`
}

type Google struct {
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
}

// Storage selects the event store backend once at startup. The rest of the
// application only ever sees the store interface.
type Storage struct {
	Backend  string `koanf:"backend"`
	LocalDir string `koanf:"localdir"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:8484",
		HTTP: HTTP{
			Addr: ":8484",
		},
		Frontend: Frontend{
			Enabled: true,
		},
		Auth: Auth{
			SessionValidity: 24 * time.Hour,
		},
		Storage: Storage{
			Backend:  BackendLocal,
			LocalDir: "./data",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "kalendo",
			Pass:   "",
			Name:   "kalendo",
			Schema: "kalendo",
		},
	}, "koanf"), nil)
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
		Prefix: "KALENDO_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "KALENDO_")), "_", ".")
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

	return app, nil
}
