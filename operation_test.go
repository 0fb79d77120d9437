package datasync

import "testing"

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OperationLoad, "load"},
		{OperationCreate, "create"},
		{OperationUpdate, "update"},
		{OperationDelete, "delete"},
		{Operation(999), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestOperation_Method(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OperationLoad, "GET"},
		{OperationCreate, "POST"},
		{OperationUpdate, "PUT"},
		{OperationDelete, "DELETE"},
	}
	for _, tt := range tests {
		if got := tt.op.Method(); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.op, tt.want, got)
		}
	}
}

func TestOperation_Reloads(t *testing.T) {
	if OperationLoad.Reloads() {
		t.Error("load must not reload")
	}
	for _, op := range []Operation{OperationCreate, OperationUpdate, OperationDelete} {
		if !op.Reloads() {
			t.Errorf("%s must reload", op)
		}
	}
}
