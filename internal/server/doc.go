// Package server implements the companion upscale HTTP service.
package server
