package modules

import (
	"errors"
	"testing"
)

func TestBuildOptionsDesignatedSlot(t *testing.T) {
	for i := 0; i < 100; i++ {
		set := BuildOptions("12345")
		if len(set.Options) != optionCount {
			t.Fatalf("expected %d options, got %d", optionCount, len(set.Options))
		}
		if set.CorrectIndex < 0 || set.CorrectIndex >= optionCount {
			t.Fatalf("correct index %d out of range", set.CorrectIndex)
		}
		if set.Options[set.CorrectIndex] != "12345" {
			t.Fatalf("designated slot %d holds %q, want the correct code", set.CorrectIndex, set.Options[set.CorrectIndex])
		}
		for _, option := range set.Options {
			if len(option) != 5 {
				t.Fatalf("distractor %q does not match code length", option)
			}
		}
	}
}

func TestOptionTokenRoundTrip(t *testing.T) {
	token := OptionToken(4, "98765")
	if token != "captcha_option_4_98765" {
		t.Fatalf("unexpected token %q", token)
	}

	index, value, err := ParseOptionToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if index != 4 {
		t.Fatalf("expected index 4, got %d", index)
	}
	if value != "98765" {
		t.Fatalf("expected value 98765, got %q", value)
	}
}

func TestParseOptionTokenMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "too few fields", data: "captcha_option_4"},
		{name: "too many fields", data: "captcha_option_4_123_extra"},
		{name: "wrong marker", data: "gate_option_4_12345"},
		{name: "wrong sub marker", data: "captcha_choice_4_12345"},
		{name: "index not numeric", data: "captcha_option_x_12345"},
		{name: "index negative", data: "captcha_option_-1_12345"},
		{name: "index out of range", data: "captcha_option_9_12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseOptionToken(tt.data); !errors.Is(err, ErrMalformedToken) {
				t.Fatalf("expected ErrMalformedToken, got %v", err)
			}
		})
	}
}

func TestMalformedTokenDoesNotTouchSessions(t *testing.T) {
	store := NewCaptchaStore(nil, nil)
	store.Begin(7, "12345", "")

	if _, _, err := ParseOptionToken("captcha_bogus"); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}

	// the session is intact and still accepts the correct answer
	result, _, err := store.Submit(7, "12345")
	if err != nil {
		t.Fatalf("submit after malformed token: %v", err)
	}
	if result != SubmitVerified {
		t.Fatalf("expected SubmitVerified, got %v", result)
	}
}
