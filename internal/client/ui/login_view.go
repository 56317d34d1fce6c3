package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

func (a *App) loginView() fyne.CanvasObject {
	emailEntry := widget.NewEntry()
	emailEntry.SetPlaceHolder("Email")

	passwordEntry := widget.NewPasswordEntry()
	passwordEntry.SetPlaceHolder("Password")

	confirmationEntry := widget.NewPasswordEntry()
	confirmationEntry.SetPlaceHolder("Password confirmation")
	confirmationEntry.Hide()

	errorLabel := widget.NewLabel("")
	errorLabel.Wrapping = fyne.TextWrapWord

	signupMode := false

	loginButton := widget.NewButton("Log in", func() {
		email := emailEntry.Text
		password := passwordEntry.Text
		confirmation := confirmationEntry.Text
		isSignup := signupMode

		go func() {
			var err error
			if isSignup {
				err = a.auth.Signup(context.Background(), email, password, confirmation)
			} else {
				err = a.auth.Login(context.Background(), email, password)
			}
			if err != nil {
				message := a.auth.Err()
				fyne.Do(func() {
					errorLabel.SetText(message)
				})
			}
		}()
	})

	var toggleButton *widget.Button
	toggleButton = widget.NewButton("Need an account? Sign up", func() {
		signupMode = !signupMode
		errorLabel.SetText("")
		if signupMode {
			confirmationEntry.Show()
			loginButton.SetText("Sign up")
			toggleButton.SetText("Have an account? Log in")
		} else {
			confirmationEntry.Hide()
			loginButton.SetText("Log in")
			toggleButton.SetText("Need an account? Sign up")
		}
	})

	form := container.NewVBox(
		widget.NewLabelWithStyle("Staylist", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		emailEntry,
		passwordEntry,
		confirmationEntry,
		loginButton,
		toggleButton,
		errorLabel,
	)

	return container.NewCenter(container.NewGridWrap(fyne.NewSize(340, 320), form))
}
