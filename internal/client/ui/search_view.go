package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/rakhimovb/staylist/internal/client/api"
)

const (
	autocompleteDebounce = 250 * time.Millisecond
	autocompleteMinChars = 2
)

func (a *App) searchView() fyne.CanvasObject {
	errorLabel := widget.NewLabel("")
	errorLabel.Wrapping = fyne.TextWrapWord

	cityEntry := widget.NewEntry()
	cityEntry.SetPlaceHolder("City")

	checkInEntry := widget.NewEntry()
	checkInEntry.SetPlaceHolder("Check in (YYYY-MM-DD)")

	checkOutEntry := widget.NewEntry()
	checkOutEntry.SetPlaceHolder("Check out (YYYY-MM-DD)")

	suggestions := container.NewVBox()
	suggestions.Hide()

	// Autocomplete fires only after the input settles and carries at least
	// the minimum number of characters.
	var debounceMu sync.Mutex
	var debounce *time.Timer

	showSuggestions := func(cities []api.City) {
		suggestions.Objects = nil
		for _, city := range cities {
			name := city.Name
			suggestions.Add(widget.NewButton(name, func() {
				cityEntry.SetText(name)
				suggestions.Hide()
			}))
		}
		if len(suggestions.Objects) > 0 {
			suggestions.Show()
		} else {
			suggestions.Hide()
		}
		suggestions.Refresh()
	}

	cityEntry.OnChanged = func(text string) {
		debounceMu.Lock()
		if debounce != nil {
			debounce.Stop()
		}
		if len(text) < autocompleteMinChars {
			debounceMu.Unlock()
			suggestions.Hide()
			return
		}
		debounce = time.AfterFunc(autocompleteDebounce, func() {
			cities, err := a.client.SearchCities(context.Background(), text)
			if err != nil {
				return
			}
			fyne.Do(func() {
				showSuggestions(cities)
			})
		})
		debounceMu.Unlock()
	}

	content := container.NewStack()
	currentPage := 1

	var resultsView func() fyne.CanvasObject
	var detailView func(listing api.Listing) fyne.CanvasObject

	showResults := func() {
		content.Objects = []fyne.CanvasObject{resultsView()}
		content.Refresh()
	}

	search := func(page int) {
		city := cityEntry.Text
		checkIn := checkInEntry.Text
		checkOut := checkOutEntry.Text

		go func() {
			if err := a.listings.Search(context.Background(), city, checkIn, checkOut, page); err != nil {
				return
			}
			fyne.Do(func() {
				currentPage = a.listings.Pagination().Page
				if currentPage < 1 {
					currentPage = 1
				}
				showResults()
			})
		}()
	}

	// Opening a card is a pure view switch; the detail data is a subset of
	// the already fetched listing.
	detailView = func(listing api.Listing) fyne.CanvasObject {
		back := widget.NewButton("Back to results", showResults)

		title := listing.Title
		if title == "" {
			title = listing.Nickname
		}

		details := container.NewVBox(
			widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel("City: "+listing.CityName),
			widget.NewLabel(fmt.Sprintf("Beds: %d  Baths: %d", listing.Beds, listing.Baths)),
			widget.NewLabel(fmt.Sprintf("Accommodates: %d", listing.Accommodates)),
			back,
		)
		return container.NewVScroll(details)
	}

	resultsView = func() fyne.CanvasObject {
		listings := a.listings.Listings()

		cards := container.NewVBox()
		for _, listing := range listings {
			listing := listing
			title := listing.Title
			if title == "" {
				title = listing.Nickname
			}
			label := fmt.Sprintf("%s (%s)", title, listing.CityName)
			cards.Add(widget.NewButton(label, func() {
				content.Objects = []fyne.CanvasObject{detailView(listing)}
				content.Refresh()
			}))
		}

		loading := a.listings.Loading()
		totalPages := a.listings.TotalPages()

		prev := widget.NewButton("Previous", func() {
			search(currentPage - 1)
		})
		next := widget.NewButton("Next", func() {
			search(currentPage + 1)
		})
		if loading || currentPage <= 1 {
			prev.Disable()
		}
		if loading || currentPage >= totalPages {
			next.Disable()
		}

		pager := container.NewGridWithColumns(3,
			prev,
			widget.NewLabelWithStyle(fmt.Sprintf("Page %d of %d", currentPage, totalPages), fyne.TextAlignCenter, fyne.TextStyle{}),
			next,
		)

		return container.NewBorder(nil, pager, nil, nil, container.NewVScroll(cards))
	}

	a.listings.OnChange(func() {
		message := a.listings.Err()
		fyne.Do(func() {
			errorLabel.SetText(message)
		})
	})

	searchButton := widget.NewButton("Search", func() {
		suggestions.Hide()
		search(1)
	})

	form := container.NewVBox(
		cityEntry,
		suggestions,
		container.NewGridWithColumns(2, checkInEntry, checkOutEntry),
		searchButton,
		errorLabel,
	)

	showResults()
	return container.NewBorder(form, nil, nil, nil, content)
}
