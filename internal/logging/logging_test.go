// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/citeseek/pkg/types"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(types.LoggingConfig{Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("suppressed")
	log.Warn().Msg("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Error("info line should be suppressed at warn level")
	}
	if !strings.Contains(out, "emitted") {
		t.Error("warn line should be emitted")
	}
}

func TestNewDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(types.LoggingConfig{Level: "bogus"}, &buf)

	log.Debug().Msg("quiet")
	log.Info().Msg("loud")

	if strings.Contains(buf.String(), "quiet") {
		t.Error("debug line should be suppressed at default level")
	}
	if !strings.Contains(buf.String(), "loud") {
		t.Error("info line should be emitted at default level")
	}
}
