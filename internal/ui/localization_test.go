package ui

import (
	"testing"

	"github.com/ytget/upscaler/internal/model"
)

// staticKeys are the labels re-rendered on every language toggle
var staticKeys = []string{
	KeyTitle,
	KeySubtitle,
	KeyUploadText,
	KeyUpscaleBtn,
	KeyProcessingText,
	KeyAdLabel,
	KeyTimerText,
	KeySuccessTitle,
	KeyDownloadBtn,
	KeySaveBtn,
	KeyResetBtn,
	KeyLangBtn,
}

func TestNewLocalization(t *testing.T) {
	l := NewLocalization()

	if l.currentLanguage != model.LanguageEnglish {
		t.Errorf("Expected default language %s, got %s", model.LanguageEnglish, l.currentLanguage)
	}
	if got := l.GetText(KeyUpscaleBtn); got != "Upscale to 4K" {
		t.Errorf("Expected English upscale label, got %q", got)
	}
}

func TestSetLanguage(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage(model.LanguageHindi)
	if l.currentLanguage != model.LanguageHindi {
		t.Errorf("Expected language %s, got %s", model.LanguageHindi, l.currentLanguage)
	}

	// Unknown languages leave the current one in place
	l.SetLanguage(model.Language("fr"))
	if l.currentLanguage != model.LanguageHindi {
		t.Errorf("Unknown language should be ignored, got %s", l.currentLanguage)
	}
}

func TestEveryStaticKeyTranslated(t *testing.T) {
	l := NewLocalization()

	for _, lang := range []model.Language{model.LanguageEnglish, model.LanguageHindi} {
		for _, key := range staticKeys {
			if _, ok := l.texts[lang][key]; !ok {
				t.Errorf("Missing %s text for key %s", lang, key)
			}
		}
	}
}

func TestToggleTwiceRestoresLabels(t *testing.T) {
	l := NewLocalization()

	before := make(map[string]string)
	for _, key := range staticKeys {
		before[key] = l.GetText(key)
	}

	lang := l.currentLanguage
	l.SetLanguage(lang.Other())
	for _, key := range []string{KeyTitle, KeyUpscaleBtn, KeyLangBtn} {
		if l.GetText(key) == before[key] {
			t.Errorf("Key %s should change after toggle", key)
		}
	}

	l.SetLanguage(l.currentLanguage.Other())
	for _, key := range staticKeys {
		if got := l.GetText(key); got != before[key] {
			t.Errorf("Key %s: expected %q after double toggle, got %q", key, before[key], got)
		}
	}
}

func TestTimerText(t *testing.T) {
	l := NewLocalization()

	tests := []struct {
		lang      model.Language
		remaining int
		expected  string
	}{
		{model.LanguageEnglish, 5, "Your download will be ready in 5s"},
		{model.LanguageEnglish, 1, "Your download will be ready in 1s"},
		{model.LanguageHindi, 3, "आपका डाउनलोड तैयार होगा 3s"},
	}

	for _, tt := range tests {
		l.SetLanguage(tt.lang)
		if got := l.TimerText(tt.remaining); got != tt.expected {
			t.Errorf("TimerText(%d) in %s = %q, want %q", tt.remaining, tt.lang, got, tt.expected)
		}
	}
}

func TestGetTextFallback(t *testing.T) {
	l := NewLocalization()
	l.texts[model.LanguageHindi] = map[string]string{}
	l.SetLanguage(model.LanguageHindi)

	if got := l.GetText(KeyTitle); got != "4K AI Upscaler" {
		t.Errorf("Expected English fallback, got %q", got)
	}
	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("Expected key fallback, got %q", got)
	}
}
