package ui

// Package ui contains the Fyne-based desktop user interface for the upscaler.
// RootUI renders the four sections of the upscale flow, turns clicks, file
// picks and drops into flow events, and shows notifications. All UI strings
// are localized via Localization.
