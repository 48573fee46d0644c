package env

import (
	"strings"
	"testing"
)

func TestMarshalEnv(t *testing.T) {
	type cfg struct {
		Token   string `env:"BOT_TOKEN"`
		Channel string `env:"CHANNEL"`
		Debug   string `env:"ANSWERBOT_DEBUG"`
		Skipped string
		Empty   string `env:"EMPTY_VALUE"`
	}

	got, err := MarshalEnv(&cfg{Token: "abc:123", Channel: "@mychannel", Debug: "0"})
	if err != nil {
		t.Fatalf("MarshalEnv failed: %v", err)
	}

	for _, want := range []string{"BOT_TOKEN=abc:123", "CHANNEL=@mychannel", "ANSWERBOT_DEBUG=0"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "EMPTY_VALUE") {
		t.Errorf("zero-value field was written:\n%s", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("output should end with a newline")
	}
}

func TestMarshalEnv_AllEmpty(t *testing.T) {
	type cfg struct {
		Token string `env:"BOT_TOKEN"`
	}
	got, err := MarshalEnv(&cfg{})
	if err != nil {
		t.Fatalf("MarshalEnv failed: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
