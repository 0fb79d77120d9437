package datasync

import (
	"testing"
	"time"
)

func TestNoOpMetricsProvider_DoesNotPanic(_ *testing.T) {
	var m NoOpMetricsProvider

	// These should not panic
	m.OnCommandAccepted(OperationLoad)
	m.OnOperationSuccess(OperationCreate, 100*time.Millisecond)
	m.OnOperationFailure(OperationDelete, "validate", 0)
	m.OnLoadingChange(true)
}

func TestNoOpMetricsProvider_ImplementsInterface(_ *testing.T) {
	var _ MetricsProvider = NoOpMetricsProvider{}
}
