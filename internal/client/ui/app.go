package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"github.com/rakhimovb/staylist/internal/client/api"
	"github.com/rakhimovb/staylist/internal/client/state"
)

// App is the desktop shell. It owns the window and switches between the
// login view and the main tabs depending on session state: the items view
// is only reachable while authenticated, the search view is public.
type App struct {
	fyneApp fyne.App
	win     fyne.Window

	client   *api.Client
	auth     *state.AuthStore
	items    *state.ItemsStore
	listings *state.ListingsStore
}

func NewApp(client *api.Client, auth *state.AuthStore, items *state.ItemsStore, listings *state.ListingsStore) *App {
	fyneApp := app.New()
	win := fyneApp.NewWindow("Staylist")
	win.Resize(fyne.NewSize(720, 520))
	win.CenterOnScreen()

	return &App{
		fyneApp:  fyneApp,
		win:      win,
		client:   client,
		auth:     auth,
		items:    items,
		listings: listings,
	}
}

func (a *App) Run() {
	a.auth.RestoreSession()
	a.render()

	a.auth.OnChange(func() {
		fyne.Do(a.render)
	})

	a.win.ShowAndRun()
}

// render is the route guard: an unauthenticated session always lands on the
// login view, never on the items view.
func (a *App) render() {
	if !a.auth.Authenticated() {
		a.win.SetContent(a.loginView())
		return
	}

	tabs := container.NewAppTabs(
		container.NewTabItem("Items", a.itemsView()),
		container.NewTabItem("Search", a.searchView()),
	)
	a.win.SetContent(tabs)
}
