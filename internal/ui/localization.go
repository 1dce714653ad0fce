package ui

import (
	"fmt"
	"strings"

	"github.com/ytget/upscaler/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage model.Language
	texts           map[model.Language]map[string]string
}

// Text keys for localization
const (
	KeyTitle          = "title"
	KeySubtitle       = "subtitle"
	KeyUploadText     = "upload_text"
	KeyUpscaleBtn     = "upscale_btn"
	KeyProcessingText = "processing_text"
	KeyAdLabel        = "ad_label"
	KeyTimerText      = "timer_text"
	KeySuccessTitle   = "success_title"
	KeyDownloadBtn    = "download_btn"
	KeySaveBtn        = "save_btn"
	KeyResetBtn       = "reset_btn"
	KeyLangBtn        = "lang_btn"

	KeyErrorTitle        = "error_title"
	KeyErrorPrefix       = "error_prefix"
	KeyInvalidImage      = "invalid_image"
	KeyUploadFailed      = "upload_failed"
	KeyErrorReadingFile  = "error_reading_file"
	KeySaved             = "saved"
	KeySaveFailed        = "save_failed"
	KeyErrorOpeningFile  = "error_opening_file"
	KeySettings          = "settings"
	KeyDownloadDirectory = "download_directory"
	KeyOpenAfterSave     = "open_after_save"
	KeyBrowse            = "browse"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeySettingsSaved     = "settings_saved"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: model.DefaultLanguage,
		texts:           make(map[model.Language]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language; unknown languages are ignored
func (l *Localization) SetLanguage(lang model.Language) {
	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[model.LanguageEnglish]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// TimerText returns the countdown line for the given number of seconds left
func (l *Localization) TimerText(remaining int) string {
	return fmt.Sprintf("%s %ds", strings.TrimSpace(l.GetText(KeyTimerText)), remaining)
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts[model.LanguageEnglish] = map[string]string{
		KeyTitle:          "4K AI Upscaler",
		KeySubtitle:       "Convert your images to ultra-high resolution instantly.",
		KeyUploadText:     "Drag & Drop or Click to Upload",
		KeyUpscaleBtn:     "Upscale to 4K",
		KeyProcessingText: "Enhancing your image with AI...",
		KeyAdLabel:        "Advertisement",
		KeyTimerText:      "Your download will be ready in ",
		KeySuccessTitle:   "Processing Complete!",
		KeyDownloadBtn:    "Download 4K Image",
		KeySaveBtn:        "Save to Downloads",
		KeyResetBtn:       "Upscale Another",
		KeyLangBtn:        "हिन्दी",

		KeyErrorTitle:        "Error",
		KeyErrorPrefix:       "Error: ",
		KeyInvalidImage:      "Please upload an image file (PNG, JPG)",
		KeyUploadFailed:      "An error occurred during upload.",
		KeyErrorReadingFile:  "Could not read the selected file",
		KeySaved:             "Image saved to",
		KeySaveFailed:        "Could not save the image",
		KeyErrorOpeningFile:  "Error opening file",
		KeySettings:          "Settings",
		KeyDownloadDirectory: "Download Directory",
		KeyOpenAfterSave:     "Open image after saving",
		KeyBrowse:            "Browse",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeySettingsSaved:     "Settings saved successfully!",
	}

	// Hindi texts
	l.texts[model.LanguageHindi] = map[string]string{
		KeyTitle:          "4K एआई अपस्केलर",
		KeySubtitle:       "अपनी छवियों को तुरंत अल्ट्रा-हाई रिज़ॉल्यूशन में बदलें।",
		KeyUploadText:     "खींचें और छोड़ें या अपलोड करने के लिए क्लिक करें",
		KeyUpscaleBtn:     "4K में अपस्केल करें",
		KeyProcessingText: "एआई के साथ आपकी छवि को बेहतर बना रहा है...",
		KeyAdLabel:        "विज्ञापन",
		KeyTimerText:      "आपका डाउनलोड तैयार होगा ",
		KeySuccessTitle:   "प्रक्रिया पूर्ण!",
		KeyDownloadBtn:    "4K छवि डाउनलोड करें",
		KeySaveBtn:        "डाउनलोड में सहेजें",
		KeyResetBtn:       "दूसरी छवि अपस्केल करें",
		KeyLangBtn:        "English",

		KeyErrorTitle:        "त्रुटि",
		KeyErrorPrefix:       "त्रुटि: ",
		KeyInvalidImage:      "कृपया एक छवि फ़ाइल अपलोड करें (PNG, JPG)",
		KeyUploadFailed:      "अपलोड के दौरान एक त्रुटि हुई।",
		KeyErrorReadingFile:  "चुनी गई फ़ाइल पढ़ी नहीं जा सकी",
		KeySaved:             "छवि यहाँ सहेजी गई",
		KeySaveFailed:        "छवि सहेजी नहीं जा सकी",
		KeyErrorOpeningFile:  "फ़ाइल खोलने में त्रुटि",
		KeySettings:          "सेटिंग्स",
		KeyDownloadDirectory: "डाउनलोड फ़ोल्डर",
		KeyOpenAfterSave:     "सहेजने के बाद छवि खोलें",
		KeyBrowse:            "ब्राउज़ करें",
		KeySave:              "सहेजें",
		KeyCancel:            "रद्द करें",
		KeySettingsSaved:     "सेटिंग्स सफलतापूर्वक सहेजी गईं!",
	}
}
