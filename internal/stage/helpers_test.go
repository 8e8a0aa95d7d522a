package stage

import "testing"

func TestParseProbeValid(t *testing.T) {
	raw := `{"streams":[{"codec_type":"audio","codec_name":"mp3"}],"format":{"duration":"42.0"}}`
	result, err := ParseProbe(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.HasAudio() {
		t.Fatal("expected audio stream")
	}
}

func TestParseProbeEmpty(t *testing.T) {
	result, err := ParseProbe("")
	if err != nil {
		t.Fatalf("unexpected error for empty input: %v", err)
	}
	if result.HasAudio() {
		t.Fatal("expected empty result for empty input")
	}
}

func TestParseProbeInvalid(t *testing.T) {
	if _, err := ParseProbe("{invalid json"); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
