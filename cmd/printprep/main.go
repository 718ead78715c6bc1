// PrintPrep — 3D Print Preparation
//
// A cross-platform desktop application for arranging objects on the build
// plate and overriding slicing settings per object.
//
// Build:
//   go build -o printprep ./cmd/printprep
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o printprep.exe ./cmd/printprep
//   GOOS=darwin  GOARCH=amd64 go build -o printprep-darwin ./cmd/printprep
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/PrintPrep/internal/ui"
)

func main() {
	application := app.NewWithID("com.piwi3910.printprep")
	application.Settings().SetTheme(ui.NewPrintPrepTheme())
	window := application.NewWindow("PrintPrep — 3D Print Preparation")

	appUI := ui.NewApp(window)
	appUI.SetupMenus() // Setup the native menu bar
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1100, 720))
	window.CenterOnScreen()
	window.ShowAndRun()
}
