package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconLanguage = "🌐"
)

// Layout sizing
const (
	DropZoneMinWidth  float32 = 420
	DropZoneMinHeight float32 = 180
	DropZoneRadius    float32 = 12
	DropZoneStroke    float32 = 2

	AdPanelMinHeight float32 = 160
	LogoSize         float32 = 32

	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 260
)
