package views

import "github.com/nimeshabuddhika/creditpath-web/pkg"

// LoginPage is the view model of the login page.
type LoginPage struct {
	Notice        *pkg.Notice
	Email         string
	RegOpen       bool
	RegName       string
	RegEmail      string
	ToggleRegHref string
}

// MainPage is the view model of the prediction page.
type MainPage struct {
	Notice   *pkg.Notice
	UserName string
	Form     ApplicantForm
	Popup    PopupView
}
