package main

import (
	"github.com/rakhimovb/staylist/internal/client/api"
	"github.com/rakhimovb/staylist/internal/client/state"
	"github.com/rakhimovb/staylist/internal/client/ui"
	"github.com/rakhimovb/staylist/internal/common/config"
)

func main() {
	config.LoadDotenv()
	cfg := config.LoadClientConfig()

	client := api.NewClient(cfg.APIBaseURL)
	auth := state.NewAuthStore(client)
	items := state.NewItemsStore(client)
	listings := state.NewListingsStore(client)

	ui.NewApp(client, auth, items, listings).Run()
}
