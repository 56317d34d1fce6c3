package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/rakhimovb/staylist/internal/client/api"
)

func (a *App) itemsView() fyne.CanvasObject {
	errorLabel := widget.NewLabel("")
	errorLabel.Wrapping = fyne.TextWrapWord

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Name")

	descriptionEntry := widget.NewEntry()
	descriptionEntry.SetPlaceHolder("Description")

	var selected *api.Item

	list := widget.NewList(
		func() int {
			return len(a.items.Items())
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			items := a.items.Items()
			if i >= len(items) {
				return
			}
			o.(*widget.Label).SetText(items[i].Name + " - " + items[i].Description)
		},
	)

	list.OnSelected = func(i widget.ListItemID) {
		items := a.items.Items()
		if i >= len(items) {
			return
		}
		item := items[i]
		selected = &item
		nameEntry.SetText(item.Name)
		descriptionEntry.SetText(item.Description)
	}

	refresh := func() {
		message := a.items.Err()
		errorLabel.SetText(message)
		list.Refresh()
	}
	a.items.OnChange(func() {
		fyne.Do(refresh)
	})

	clearForm := func() {
		selected = nil
		nameEntry.SetText("")
		descriptionEntry.SetText("")
		list.UnselectAll()
	}

	saveButton := widget.NewButton("Save", func() {
		name := nameEntry.Text
		description := descriptionEntry.Text
		current := selected

		go func() {
			var err error
			if current != nil {
				err = a.items.Update(context.Background(), current.ID, name, description)
			} else {
				err = a.items.Create(context.Background(), name, description)
			}
			if err == nil {
				fyne.Do(clearForm)
			}
		}()
	})

	deleteButton := widget.NewButton("Delete", func() {
		current := selected
		if current == nil {
			return
		}
		go func() {
			if err := a.items.Delete(context.Background(), current.ID); err == nil {
				fyne.Do(clearForm)
			}
		}()
	})

	newButton := widget.NewButton("New", clearForm)

	logoutButton := widget.NewButton("Log out", func() {
		go a.auth.Logout(context.Background())
	})

	go a.items.Fetch(context.Background())

	form := container.NewVBox(
		nameEntry,
		descriptionEntry,
		container.NewGridWithColumns(3, saveButton, deleteButton, newButton),
		errorLabel,
		logoutButton,
	)

	return container.NewBorder(nil, form, nil, nil, list)
}
