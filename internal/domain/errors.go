package domain

import "errors"

// Sentinel errors shared across layers.
var (
	// ErrEmbeddingProviderError signals an embedding provider failure.
	// The search pipeline treats it as a cue to fall back, never to fail.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
