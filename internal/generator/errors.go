package generator

import "errors"

var (
	// ErrRendererRequired indicates the service was constructed without a
	// template renderer.
	ErrRendererRequired = errors.New("generator: renderer is required")
	// ErrSourceRequired indicates no document source was provided.
	ErrSourceRequired = errors.New("generator: document source is required")
	// ErrOutputRequired indicates the output directory is not configured.
	ErrOutputRequired = errors.New("generator: output directory is required")
)
