package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"

	"github.com/vancomm/mazes/internal/config"
	"github.com/vancomm/mazes/internal/handlers"
	"github.com/vancomm/mazes/internal/repository"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	router := a.router
	if base := config.BasePath(); base != "" {
		router = a.router.PathPrefix(base).Subrouter()
	}

	router.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		handlers.SendMessageOrLog(w, a.logger, "ok")
	})

	mazes := handlers.NewMazeHandler(
		a.logger, repository.New(a.db), a.limits, createRand(),
	)
	mazes.Register(router)
}
