// Package catalog lists plots and their images from the dataset directory.
//
// The dataset is treated as immutable input: the service reads plot
// identifiers and image metadata from it but never writes. Capture dates are
// parsed from filenames across every convention the ingestion pipeline has
// used, falling back to file modification time.
package catalog
