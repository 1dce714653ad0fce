// Package imaging computes 4K target sizes and resamples images for the
// companion server.
package imaging
