package dto

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/gin-gonic/gin/binding"

	"voice-detection-api/internal/domain/entity"
)

func TestValidationMessageJoinsFieldErrors(t *testing.T) {
	err := binding.Validator.ValidateStruct(&VoiceDetectionRequest{
		Language:    "French",
		AudioFormat: "wav",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	want := `Invalid enum value. Expected 'Tamil' | 'English' | 'Hindi' | 'Malayalam' | 'Telugu', received 'French', ` +
		`Invalid literal value, expected "mp3", Audio data is required`
	if got := ValidationMessage(err); got != want {
		t.Fatalf("ValidationMessage() =\n%s\nwant\n%s", got, want)
	}
}

func TestValidationMessageRequiredFields(t *testing.T) {
	err := binding.Validator.ValidateStruct(&VoiceDetectionRequest{})
	want := "Required, Required, Audio data is required"
	if got := ValidationMessage(err); got != want {
		t.Fatalf("ValidationMessage() = %q, want %q", got, want)
	}
}

func TestValidationMessageAcceptsValidRequest(t *testing.T) {
	for _, lang := range entity.Languages() {
		req := &VoiceDetectionRequest{Language: lang, AudioFormat: "mp3", AudioBase64: "SUQz"}
		if err := binding.Validator.ValidateStruct(req); err != nil {
			t.Fatalf("%s: unexpected error %v", lang, err)
		}
	}
}

func TestValidationMessageJSONErrors(t *testing.T) {
	var req VoiceDetectionRequest

	if got := ValidationMessage(stderrors.New("unexpected EOF")); got != "Invalid request body" {
		t.Fatalf("generic error message = %q", got)
	}

	err := json.Unmarshal([]byte(`{bad json}`), &req)
	if got := ValidationMessage(err); got != "Invalid JSON body" {
		t.Fatalf("syntax error message = %q", got)
	}

	err = json.Unmarshal([]byte(`{"audioBase64": 12}`), &req)
	if got := ValidationMessage(err); got != "Expected string for audioBase64" {
		t.Fatalf("type error message = %q", got)
	}

	for _, body := range []string{`["Tamil"]`, `"Tamil"`, `42`} {
		err = json.Unmarshal([]byte(body), &req)
		if got := ValidationMessage(err); got != "Invalid request body" {
			t.Fatalf("top-level %s message = %q", body, got)
		}
	}
}
