package platform

// Package platform contains OS/platform integration glue: filesystem helpers,
// content type detection for picked files, and opening saved images.
