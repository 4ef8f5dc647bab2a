package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/freelyform/freelyform/answer"
	"github.com/freelyform/freelyform/app"
	"github.com/freelyform/freelyform/config"
	"github.com/freelyform/freelyform/database"
	"github.com/freelyform/freelyform/httpx"
	"github.com/freelyform/freelyform/log"
	"github.com/freelyform/freelyform/routes"
	"github.com/freelyform/freelyform/store"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	if err := database.SeedAdmin(db, cfg); err != nil {
		log.Fatal("main.db.seed:", err)
	}

	prefabs := store.NewPrefabStore(db)
	answers := store.NewAnswerStore(db)
	users := store.NewUserStore(db)

	app := app.App{
		Prefabs:      prefabs,
		Answers:      answer.NewService(prefabs, answers, users),
		BearerServer: httpx.NewBearerServer(db, cfg),
		Config:       cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
