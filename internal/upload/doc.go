package upload

// Package upload implements the HTTP side of the upscale flow: it posts the
// picked image to the server as multipart form data, decodes the JSON result,
// classifies failures into transport and server-reported errors, and fetches
// the processed image from its download locator.
