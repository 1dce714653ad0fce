package flow

// Package flow drives the upload → processing → ad → download sequence of the
// upscaler. Machine is a pure transition function over State: it consumes
// Event values and returns Effect values. Controller serializes events coming
// from the UI, the upload goroutine and the countdown ticker into the Machine,
// runs the effects and hands every new State to a View.
