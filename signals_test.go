package datasync

import "testing"

func TestSignalNames(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{CommandAccepted.Name(), "datasync.command.accepted"},
		{CommandSuperseded.Name(), "datasync.command.superseded"},
		{ValidationFailed.Name(), "datasync.validation.failed"},
		{RequestFailed.Name(), "datasync.request.failed"},
		{ReloadTriggered.Name(), "datasync.reload.triggered"},
		{SnapshotChanged.Name(), "datasync.snapshot.changed"},
		{LoadingChanged.Name(), "datasync.loading.changed"},
		{ServiceClosed.Name(), "datasync.service.closed"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("expected name %q, got %q", tt.want, tt.got)
		}
	}
}
