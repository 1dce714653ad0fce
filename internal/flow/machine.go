package flow

import (
	"github.com/ytget/upscaler/internal/model"
	"github.com/ytget/upscaler/internal/upload"
)

// Machine is the upscale flow state machine. It is not safe for concurrent
// use; Controller serializes access to it.
type Machine struct {
	state          State
	countdownTicks int
}

// NewMachine creates a machine in the Upload section
func NewMachine(lang model.Language, countdownTicks int) *Machine {
	if countdownTicks < 1 {
		countdownTicks = DefaultCountdownTicks
	}
	return &Machine{
		state: State{
			Section:  model.SectionUpload,
			Language: lang,
		},
		countdownTicks: countdownTicks,
	}
}

// State returns a copy of the current state
func (m *Machine) State() State {
	return m.state
}

// Handle applies one event and returns the effects it requires
func (m *Machine) Handle(ev Event) []Effect {
	switch e := ev.(type) {
	case FileSelected:
		return m.onFileSelected(e)
	case UpscaleRequested:
		return m.onUpscaleRequested()
	case UploadFinished:
		return m.onUploadFinished(e)
	case Tick:
		return m.onTick()
	case ResetRequested:
		return m.onReset()
	case LanguageToggled:
		m.state.Language = m.state.Language.Other()
		return nil
	default:
		return nil
	}
}

func (m *Machine) onFileSelected(e FileSelected) []Effect {
	if !m.state.Section.AcceptsFiles() || e.File == nil {
		return nil
	}

	if !e.File.IsImage() {
		// Any earlier valid selection stays in place
		return []Effect{Notify{Notice: Notice{
			Kind:    NoticeValidation,
			Message: e.File.Name + ": " + e.File.MIMEType,
		}}}
	}

	m.state.File = e.File
	return nil
}

func (m *Machine) onUpscaleRequested() []Effect {
	if !m.state.CanUpscale() {
		return nil
	}

	m.state.Section = model.SectionProcessing
	return []Effect{StartUpload{File: m.state.File}}
}

func (m *Machine) onUploadFinished(e UploadFinished) []Effect {
	if m.state.Section != model.SectionProcessing {
		return nil
	}

	if e.Err != nil || e.Result == nil {
		m.state.Section = model.SectionUpload
		return []Effect{Notify{Notice: classifyUploadError(e.Err)}}
	}

	m.state.Result = e.Result
	m.state.Remaining = m.countdownTicks
	m.state.Section = model.SectionAd
	return []Effect{StartCountdown{}}
}

func (m *Machine) onTick() []Effect {
	if m.state.Section != model.SectionAd {
		return nil
	}

	m.state.Remaining--
	if m.state.Remaining > 0 {
		return nil
	}

	m.state.Remaining = 0
	m.state.Section = model.SectionDownload
	return []Effect{StopCountdown{}}
}

func (m *Machine) onReset() []Effect {
	if m.state.Section != model.SectionDownload {
		return nil
	}

	m.state.File = nil
	m.state.Result = nil
	m.state.Remaining = 0
	m.state.Section = model.SectionUpload
	return nil
}

// classifyUploadError maps an upload failure to a notice
func classifyUploadError(err error) Notice {
	if serverErr, ok := upload.AsServerError(err); ok {
		return Notice{Kind: NoticeServer, Message: serverErr.Message}
	}
	if err == nil {
		return Notice{Kind: NoticeTransport, Message: "empty upload result"}
	}
	return Notice{Kind: NoticeTransport, Message: err.Error()}
}
