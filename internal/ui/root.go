package ui

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/ytget/upscaler/internal/config"
	"github.com/ytget/upscaler/internal/flow"
	"github.com/ytget/upscaler/internal/model"
	"github.com/ytget/upscaler/internal/platform"
	"github.com/ytget/upscaler/internal/upload"
)

// SaveTimeout bounds fetching the processed image to disk
const SaveTimeout = 2 * time.Minute

// RootUI represents the main UI structure. It is the flow.View of the
// upscale flow and the source of all user events.
type RootUI struct {
	window       fyne.Window
	uploader     upload.Uploader
	settings     *config.Settings
	localization *Localization
	log          logrus.FieldLogger
	controller   *flow.Controller

	// Header
	titleLabel    *widget.Label
	subtitleLabel *widget.Label
	langBtn       *widget.Button
	settingsBtn   *widget.Button

	// Upload section
	dropZone   *DropZone
	upscaleBtn *widget.Button

	// Processing section
	processingLabel *widget.Label
	processingBar   *widget.ProgressBarInfinite

	// Ad section
	adLabel    *widget.Label
	timerLabel *widget.Label

	// Download section
	successLabel    *widget.Label
	resolutionLabel *widget.Label
	downloadLink    *widget.Hyperlink
	saveBtn         *widget.Button
	resetBtn        *widget.Button

	sections map[model.Section]*fyne.Container

	version string

	// Countdown position the timer label was last written for
	timerSection   model.Section
	timerRemaining int
}

// NewRootUI creates and initializes the main UI and its flow controller.
// version is appended to the window title when not empty.
func NewRootUI(window fyne.Window, uploader upload.Uploader, settings *config.Settings, version string, opts flow.Options, log logrus.FieldLogger) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(opts.Language)

	ui := &RootUI{
		window:       window,
		uploader:     uploader,
		settings:     settings,
		localization: localization,
		log:          log,
		version:      version,
	}

	ui.setupUI()

	opts.Logger = log
	ui.controller = flow.NewController(uploader, ui, opts)

	window.SetOnDropped(ui.onDropped)
	window.SetOnClosed(ui.Close)

	log.Debug("UI setup completed")
	return ui
}

// Close stops the flow controller
func (ui *RootUI) Close() {
	ui.controller.Close()
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Header
	ui.titleLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	ui.subtitleLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	ui.subtitleLabel.Wrapping = fyne.TextWrapWord

	ui.langBtn = widget.NewButton("", ui.onToggleLanguage)
	ui.langBtn.Importance = widget.LowImportance
	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	var left fyne.CanvasObject
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		logoImage.FillMode = canvas.ImageFillContain
		left = logoImage
	}
	header := container.NewBorder(nil, nil, left, container.NewHBox(ui.langBtn, ui.settingsBtn),
		container.NewVBox(ui.titleLabel, ui.subtitleLabel))

	// Upload
	ui.dropZone = NewDropZone("", ui.showFilePicker)
	ui.upscaleBtn = widget.NewButton("", ui.onUpscale)
	ui.upscaleBtn.Importance = widget.HighImportance
	ui.upscaleBtn.Disable()
	uploadSection := container.NewVBox(ui.dropZone, ui.upscaleBtn)

	// Processing
	ui.processingLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	ui.processingBar = widget.NewProgressBarInfinite()
	ui.processingBar.Stop()
	processingSection := container.NewVBox(layout.NewSpacer(), ui.processingBar, ui.processingLabel, layout.NewSpacer())

	// Ad
	adBackground := canvas.NewRectangle(theme.InputBackgroundColor())
	adBackground.SetMinSize(fyne.NewSize(DropZoneMinWidth, AdPanelMinHeight))
	adBackground.CornerRadius = DropZoneRadius
	ui.adLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	ui.timerLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	adSection := container.NewVBox(container.NewStack(adBackground, container.NewCenter(ui.adLabel)), ui.timerLabel)

	// Download
	ui.successLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	ui.resolutionLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	ui.downloadLink = widget.NewHyperlink("", nil)
	ui.saveBtn = widget.NewButton("", ui.onSave)
	ui.saveBtn.Importance = widget.HighImportance
	ui.resetBtn = widget.NewButton("", ui.onReset)
	downloadSection := container.NewVBox(
		ui.successLabel,
		ui.resolutionLabel,
		container.NewCenter(ui.downloadLink),
		container.NewHBox(layout.NewSpacer(), ui.saveBtn, ui.resetBtn, layout.NewSpacer()),
	)

	ui.sections = map[model.Section]*fyne.Container{
		model.SectionUpload:     uploadSection,
		model.SectionProcessing: processingSection,
		model.SectionAd:         adSection,
		model.SectionDownload:   downloadSection,
	}

	body := container.NewStack()
	for _, section := range model.AllSections {
		body.Add(ui.sections[section])
	}
	ui.window.SetContent(container.NewBorder(header, nil, nil, nil, container.NewPadded(body)))
}

// Render implements flow.View
func (ui *RootUI) Render(state flow.State) {
	fyne.Do(func() {
		ui.apply(state)
	})
}

// Notify implements flow.View
func (ui *RootUI) Notify(notice flow.Notice) {
	fyne.Do(func() {
		ui.showMessage(ui.localization.GetText(KeyErrorTitle), ui.noticeMessage(notice))
	})
}

// apply updates every widget from state; must run on the Fyne main goroutine
func (ui *RootUI) apply(state flow.State) {
	ui.localization.SetLanguage(state.Language)
	ui.refreshUITexts(state)

	if state.CanUpscale() {
		ui.upscaleBtn.Enable()
	} else {
		ui.upscaleBtn.Disable()
	}

	if state.Section.IsBusy() {
		ui.settingsBtn.Disable()
	} else {
		ui.settingsBtn.Enable()
	}

	// A language toggle alone does not rewrite the countdown; the next tick does
	if state.Section != ui.timerSection || state.Remaining != ui.timerRemaining {
		ui.timerLabel.SetText(ui.localization.TimerText(state.Remaining))
		ui.timerSection = state.Section
		ui.timerRemaining = state.Remaining
	}

	if state.Result != nil {
		ui.resolutionLabel.SetText(state.Result.ResolutionText())
		if u, err := url.Parse(ui.uploader.DownloadURL(state.Result)); err == nil {
			ui.downloadLink.SetURL(u)
		} else {
			ui.log.WithError(err).WithField("filename", state.Result.Filename).Warn("Invalid download locator")
		}
	}

	if state.Section == model.SectionProcessing {
		ui.processingBar.Start()
	} else {
		ui.processingBar.Stop()
	}

	ui.showSection(state.Section)
}

// refreshUITexts re-renders every static label in the current language
func (ui *RootUI) refreshUITexts(state flow.State) {
	t := ui.localization.GetText

	if ui.version != "" {
		ui.window.SetTitle(fmt.Sprintf("%s v%s", t(KeyTitle), ui.version))
	} else {
		ui.window.SetTitle(t(KeyTitle))
	}
	ui.titleLabel.SetText(t(KeyTitle))
	ui.subtitleLabel.SetText(t(KeySubtitle))
	ui.langBtn.SetText(IconLanguage + " " + t(KeyLangBtn))

	if state.File != nil {
		ui.dropZone.SetText(state.File.Name)
	} else {
		ui.dropZone.SetText(t(KeyUploadText))
	}
	ui.upscaleBtn.SetText(t(KeyUpscaleBtn))

	ui.processingLabel.SetText(t(KeyProcessingText))
	ui.adLabel.SetText(t(KeyAdLabel))

	ui.successLabel.SetText(t(KeySuccessTitle))
	ui.downloadLink.SetText(t(KeyDownloadBtn))
	ui.saveBtn.SetText(t(KeySaveBtn))
	ui.resetBtn.SetText(t(KeyResetBtn))
}

// showSection makes exactly one section visible
func (ui *RootUI) showSection(active model.Section) {
	for section, c := range ui.sections {
		if section == active {
			c.Show()
		} else {
			c.Hide()
		}
	}
}

// noticeMessage turns a flow notice into localized text
func (ui *RootUI) noticeMessage(notice flow.Notice) string {
	switch notice.Kind {
	case flow.NoticeValidation:
		return ui.localization.GetText(KeyInvalidImage)
	case flow.NoticeServer:
		return ui.localization.GetText(KeyErrorPrefix) + notice.Message
	default:
		return ui.localization.GetText(KeyUploadFailed)
	}
}

// showMessage shows a blocking information dialog
func (ui *RootUI) showMessage(title, message string) {
	dialog.ShowInformation(title, message, ui.window)
}

// showFilePicker opens the file dialog for click-to-browse
func (ui *RootUI) showFilePicker() {
	if !ui.controller.State().Section.AcceptsFiles() {
		return
	}

	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			ui.log.WithError(err).Warn("File dialog failed")
			return
		}
		if reader == nil {
			// Cancelled
			return
		}
		go ui.loadAndSelect(reader)
	}, ui.window)
	fd.Show()
}

// onDropped handles files dropped anywhere on the window; only the first is used
func (ui *RootUI) onDropped(_ fyne.Position, uris []fyne.URI) {
	if len(uris) == 0 {
		return
	}

	uri := uris[0]
	go func() {
		reader, err := storage.Reader(uri)
		if err != nil {
			ui.reportReadError(uri.Name(), err)
			return
		}
		ui.loadAndSelect(reader)
	}()
}

// loadAndSelect reads the picked file and dispatches it into the flow
func (ui *RootUI) loadAndSelect(reader fyne.URIReadCloser) {
	defer reader.Close()

	uri := reader.URI()
	content, err := io.ReadAll(reader)
	if err != nil {
		ui.reportReadError(uri.Name(), err)
		return
	}

	ui.controller.Dispatch(flow.FileSelected{File: newSelectedFile(uri, content)})
}

func (ui *RootUI) reportReadError(name string, err error) {
	ui.log.WithError(err).WithField("file", name).Warn("Failed to read file")
	fyne.Do(func() {
		ui.showMessage(ui.localization.GetText(KeyErrorTitle),
			ui.localization.GetText(KeyErrorReadingFile)+": "+name)
	})
}

// newSelectedFile builds the flow's view of a picked file
func newSelectedFile(uri fyne.URI, content []byte) *model.SelectedFile {
	return &model.SelectedFile{
		Name:     uri.Name(),
		MIMEType: platform.DetectMIMEType(uri.Name(), uri.MimeType(), content),
		Content:  content,
	}
}

// onUpscale handles the upscale button click
func (ui *RootUI) onUpscale() {
	ui.controller.Dispatch(flow.UpscaleRequested{})
}

// onToggleLanguage handles the language button click
func (ui *RootUI) onToggleLanguage() {
	ui.controller.Dispatch(flow.LanguageToggled{})
}

// onReset handles the "upscale another" button click
func (ui *RootUI) onReset() {
	ui.controller.Dispatch(flow.ResetRequested{})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.showMessage(ui.localization.GetText(KeySettings), ui.localization.GetText(KeySettingsSaved))
	})
}

// onSave fetches the processed image into the download directory
func (ui *RootUI) onSave() {
	result := ui.controller.State().Result
	if result == nil {
		return
	}

	destDir := ui.settings.GetDownloadDirectory()
	openAfterSave := ui.settings.GetOpenAfterSave()
	ui.saveBtn.Disable()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), SaveTimeout)
		defer cancel()

		path, err := ui.uploader.Fetch(ctx, result, destDir)
		fyne.Do(func() {
			ui.saveBtn.Enable()
			if err != nil {
				ui.showMessage(ui.localization.GetText(KeyErrorTitle),
					ui.localization.GetText(KeySaveFailed)+": "+err.Error())
				return
			}
			ui.showMessage(ui.localization.GetText(KeySuccessTitle),
				ui.localization.GetText(KeySaved)+" "+path)
		})

		if err != nil {
			ui.log.WithError(err).WithField("filename", result.Filename).Warn("Failed to save image")
			return
		}

		if openAfterSave {
			if err := platform.OpenFileWithDefaultApp(path); err != nil {
				ui.log.WithError(err).WithField("path", path).Warn(ui.localization.GetText(KeyErrorOpeningFile))
			}
		}
	}()
}
