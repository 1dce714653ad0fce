package flow

import "github.com/ytget/upscaler/internal/model"

// DefaultCountdownTicks is the number of ticks the ad is shown for
const DefaultCountdownTicks = 5

// State is the complete UI state of the upscale flow
type State struct {
	Section   model.Section
	Language  model.Language
	File      *model.SelectedFile
	Result    *model.UpscaleResult
	Remaining int // countdown ticks left while in SectionAd
}

// CanUpscale returns true if the upscale action is enabled
func (s State) CanUpscale() bool {
	return s.Section == model.SectionUpload && s.File.IsImage()
}

// NoticeKind classifies user-facing failures
type NoticeKind int

const (
	// NoticeValidation is a picked file that is not an image
	NoticeValidation NoticeKind = iota
	// NoticeTransport is a failed request or unreadable response
	NoticeTransport
	// NoticeServer is a response with success=false
	NoticeServer
)

// String returns the notice kind name used in logs
func (k NoticeKind) String() string {
	switch k {
	case NoticeValidation:
		return "validation"
	case NoticeTransport:
		return "transport"
	case NoticeServer:
		return "server"
	default:
		return "unknown"
	}
}

// Notice is a blocking user-facing notification
type Notice struct {
	Kind    NoticeKind
	Message string // server message for NoticeServer, diagnostic detail otherwise
}
