package websocket

import (
	"encoding/json"
	"testing"
)

func TestLocationFrameDistinguishesZeroFromMissing(t *testing.T) {
	var frame LocationFrame
	if err := json.Unmarshal([]byte(`{"latitude": 0}`), &frame); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if frame.Latitude == nil || *frame.Latitude != 0 {
		t.Fatalf("expected latitude 0 to be present, got %v", frame.Latitude)
	}
	if frame.Longitude != nil {
		t.Fatalf("expected missing longitude to decode as nil, got %v", *frame.Longitude)
	}

	frame = LocationFrame{}
	if err := json.Unmarshal([]byte(`{"latitude": 10.5, "longitude": -3.25}`), &frame); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if frame.Latitude == nil || frame.Longitude == nil {
		t.Fatalf("expected both coordinates present, got %+v", frame)
	}
}

func TestChatFrameDecoding(t *testing.T) {
	var frame ChatFrame
	if err := json.Unmarshal([]byte(`{"receiverId": "bob", "message": "hi"}`), &frame); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if frame.ReceiverID != "bob" || frame.Message != "hi" {
		t.Fatalf("unexpected frame: %+v", frame)
	}
}

func TestErrorFrameShape(t *testing.T) {
	data, err := json.Marshal(ErrorFrame{Error: "missing required field: receiverId"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"error":"missing required field: receiverId"}` {
		t.Fatalf("unexpected error frame: %s", data)
	}
}
