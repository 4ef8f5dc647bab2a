package app

import (
	"github.com/go-chi/oauth"

	"github.com/freelyform/freelyform/answer"
	"github.com/freelyform/freelyform/config"
	"github.com/freelyform/freelyform/store"
)

// App bundles the wired collaborators handlers close over.
type App struct {
	Prefabs store.PrefabStore
	Answers *answer.Service

	BearerServer *oauth.BearerServer
	config.Config
}
