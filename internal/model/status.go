package model

// Section represents one of the mutually exclusive views of the upscale flow
type Section string

const (
	// SectionUpload accepts a file and offers the upscale action
	SectionUpload Section = "Upload"

	// SectionProcessing is shown while the upload request is pending
	SectionProcessing Section = "Processing"

	// SectionAd is shown while the countdown runs
	SectionAd Section = "Ad"

	// SectionDownload reveals the download reference
	SectionDownload Section = "Download"
)

// AllSections lists every section in flow order
var AllSections = []Section{SectionUpload, SectionProcessing, SectionAd, SectionDownload}

// String returns the string representation of Section
func (s Section) String() string {
	return string(s)
}

// IsBusy returns true while the flow is waiting on the server or the countdown
func (s Section) IsBusy() bool {
	return s == SectionProcessing || s == SectionAd
}

// AcceptsFiles returns true if a file pick or drop is handled in this section
func (s Section) AcceptsFiles() bool {
	return s == SectionUpload
}
