package models

import (
	"github.com/cockroachdb/errors"
)

var (
	// ConfigurationError is the only error that aborts a run. It is raised
	// before any network activity when required configuration is missing.
	ConfigurationError = errors.New("invalid configuration")

	// BadParameterError covers inputs rejected before any fetch, such as
	// malformed object ids.
	BadParameterError = errors.New("bad parameter")

	// NotFoundError marks an upstream object that the platform reports as
	// unavailable (4xx). Never retried.
	NotFoundError = errors.New("not found")

	// TransientUpstreamError marks a retryable upstream failure (429, 5xx,
	// timeout, transport). After retries are exhausted it degrades to a
	// cache miss.
	TransientUpstreamError = errors.New("transient upstream error")
)
