package flow

import "github.com/ytget/upscaler/internal/model"

// Event is an input to the Machine
type Event interface {
	isEvent()
}

// FileSelected is a file picked through the browser dialog or dropped on the window
type FileSelected struct {
	File *model.SelectedFile
}

// UpscaleRequested is a press of the upscale button
type UpscaleRequested struct{}

// UploadFinished carries the outcome of the upload request
type UploadFinished struct {
	Result *model.UpscaleResult
	Err    error
}

// Tick is one countdown time unit
type Tick struct{}

// ResetRequested is a press of the "upscale another" button
type ResetRequested struct{}

// LanguageToggled is a press of the language button
type LanguageToggled struct{}

func (FileSelected) isEvent()     {}
func (UpscaleRequested) isEvent() {}
func (UploadFinished) isEvent()   {}
func (Tick) isEvent()             {}
func (ResetRequested) isEvent()   {}
func (LanguageToggled) isEvent()  {}

// Effect is a side effect requested by the Machine
type Effect interface {
	isEffect()
}

// StartUpload asks for one asynchronous upload of File
type StartUpload struct {
	File *model.SelectedFile
}

// StartCountdown asks for the repeating tick source to be started
type StartCountdown struct{}

// StopCountdown asks for the repeating tick source to be stopped
type StopCountdown struct{}

// Notify asks for a blocking notification
type Notify struct {
	Notice Notice
}

func (StartUpload) isEffect()    {}
func (StartCountdown) isEffect() {}
func (StopCountdown) isEffect()  {}
func (Notify) isEffect()         {}
