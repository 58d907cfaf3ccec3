package websocket

import "testing"

func TestParseClosePayload(t *testing.T) {
	tests := []struct {
		name       string
		payload    []byte
		wantStatus StatusCode
		wantReason string
	}{
		{"empty", nil, StatusNotReceived, ""},
		{"one byte", []byte{0x03}, StatusProtocolError, ""},
		{"code only", encodeClosePayload(StatusNormalClosure, ""), StatusNormalClosure, ""},
		{"code and reason", encodeClosePayload(StatusGoingAway, "bye"), StatusGoingAway, "bye"},
		{"invalid utf8 reason", append(encodeClosePayload(StatusNormalClosure, ""), 0xff), StatusInvalidData, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, reason := parseClosePayload(tt.payload)
			if status != tt.wantStatus || reason != tt.wantReason {
				t.Errorf("parseClosePayload() = (%v, %q), want (%v, %q)", status, reason, tt.wantStatus, tt.wantReason)
			}
		})
	}
}

func TestCheckClosePayloadCorrectsInvalidCodes(t *testing.T) {
	tests := []struct {
		name   string
		status StatusCode
		want   StatusCode
	}{
		{"below range", StatusCode(999), StatusProtocolError},
		{"reserved 1004", StatusCode(1004), StatusProtocolError},
		{"not received sent on wire", StatusNotReceived, StatusProtocolError},
		{"closed abnormally sent on wire", StatusClosedAbnormally, StatusProtocolError},
		{"above registry below 3000", StatusCode(2999), StatusProtocolError},
		{"valid normal closure", StatusNormalClosure, StatusNormalClosure},
		{"valid library range", StatusCode(3000), StatusCode(3000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := checkClosePayload(tt.status, "")
			if got != tt.want {
				t.Errorf("checkClosePayload(%v) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestCheckClosePayloadTruncatesOverlongReason(t *testing.T) {
	long := make([]byte, maxCloseReason+50)
	for i := range long {
		long[i] = 'x'
	}
	_, reason := checkClosePayload(StatusNormalClosure, string(long))
	if len(reason) != maxCloseReason {
		t.Errorf("len(reason) = %d, want %d", len(reason), maxCloseReason)
	}
}

func TestEncodeClosePayloadRoundTrip(t *testing.T) {
	payload := encodeClosePayload(StatusGoingAway, "server shutting down")
	status, reason := parseClosePayload(payload)
	if status != StatusGoingAway || reason != "server shutting down" {
		t.Errorf("round trip = (%v, %q)", status, reason)
	}
}

func TestStatusCodeStringUnknown(t *testing.T) {
	if got := StatusCode(4001).String(); got != "4001" {
		t.Errorf("String() = %q, want %q", got, "4001")
	}
}
