package events

import "testing"

func TestChangeMessageRoundTrip(t *testing.T) {
	msg := NewChangeMessage(EntityProject, OpUpdated, "p1")

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	back, err := ChangeMessageFromJSON(data)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if back.Entity != EntityProject || back.Op != OpUpdated || back.ID != "p1" {
		t.Fatalf("round trip mismatch: %+v", back)
	}
	if back.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}
}

func TestChangeMessageRejectsIncomplete(t *testing.T) {
	cases := []string{
		`{}`,
		`{"entity":"project"}`,
		`{"entity":"project","op":"created"}`,
		`not json`,
	}
	for _, raw := range cases {
		if _, err := ChangeMessageFromJSON([]byte(raw)); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}
