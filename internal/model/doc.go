package model

// Package model defines domain data structures used across the app: the UI
// sections of the upscale flow, display languages, the picked file and the
// server's upscale result. Structures are plain values so the flow state can
// be copied and inspected without a window.
