package errors

import sterrors "errors"

var (
	ErrPropertiesRequired = sterrors.New("wireup: properties are required")
	ErrLoggerRequired     = sterrors.New("wireup: logger is required")
	ErrContainerRequired  = sterrors.New("wireup: container is required")
	ErrComponentExists    = sterrors.New("wireup: component already provided")
	ErrComponentMissing   = sterrors.New("wireup: component not found")
	ErrTaskMissing        = sterrors.New("wireup: no task registered for configured job")
	ErrBundleMissing      = sterrors.New("wireup: named TLS bundle not registered")
)
