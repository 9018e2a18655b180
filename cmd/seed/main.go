// Command seed loads courses and learners from a YAML fixture into the configured database.
//
//	go run ./cmd/seed -file fixtures.yaml
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/yungbote/learnosphere-backend/internal/data/db"
	"github.com/yungbote/learnosphere-backend/internal/data/seed"
	"github.com/yungbote/learnosphere-backend/internal/platform/config"
	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

type seedConfig struct {
	LogMode string `env:"LOG_MODE" envDefault:"development"`
	DB      db.Config
}

func main() {
	file := flag.String("file", "fixtures.yaml", "YAML fixture with courses and learners")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Printf("load .env: %v\n", err)
		os.Exit(1)
	}
	var cfg seedConfig
	if err := config.ParseEnv(&cfg); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("read fixture", "file", *file, "error", err)
	}
	fx, err := seed.Parse(raw)
	if err != nil {
		log.Fatal("parse fixture", "file", *file, "error", err)
	}

	svc, err := db.Open(cfg.DB, log)
	if err != nil {
		log.Fatal("open database", "error", err)
	}
	defer func() { _ = svc.Close() }()
	if err := db.AutoMigrateAll(svc.DB()); err != nil {
		log.Fatal("automigrate", "error", err)
	}

	res, err := seed.Apply(svc.DB(), log, fx)
	if err != nil {
		log.Fatal("seed", "error", err)
	}
	log.Info("seed complete", "courses", res.Courses, "learners", res.Learners)
}
