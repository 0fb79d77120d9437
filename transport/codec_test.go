package transport

import "testing"

type codecTestItem struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func TestJSONCodec_RoundTrip(t *testing.T) {
	codec := JSONCodec{}

	data, err := codec.Marshal(codecTestItem{ID: 7, Name: "seven"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"id":7,"name":"seven"}` {
		t.Errorf("unexpected JSON %s", data)
	}

	var item codecTestItem
	if err := codec.Unmarshal(data, &item); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if item.ID != 7 || item.Name != "seven" {
		t.Errorf("unexpected item %+v", item)
	}
}

func TestJSONCodec_UnmarshalInvalid(t *testing.T) {
	var item codecTestItem
	if err := (JSONCodec{}).Unmarshal([]byte(`{not valid json}`), &item); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestJSONCodec_ContentType(t *testing.T) {
	if ct := (JSONCodec{}).ContentType(); ct != "application/json" {
		t.Errorf("expected 'application/json', got %q", ct)
	}
}

func TestYAMLCodec_Unmarshal(t *testing.T) {
	var items []codecTestItem
	if err := (YAMLCodec{}).Unmarshal([]byte("- id: 1\n  name: a\n- id: 2\n  name: b"), &items); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(items) != 2 || items[1].Name != "b" {
		t.Errorf("unexpected items %+v", items)
	}
}

func TestYAMLCodec_ContentType(t *testing.T) {
	if ct := (YAMLCodec{}).ContentType(); ct != "application/x-yaml" {
		t.Errorf("expected 'application/x-yaml', got %q", ct)
	}
}
