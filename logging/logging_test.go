package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitWriterLevels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	InitWriter(&buf, false)
	log.Debug().Msg("hidden")
	log.Info().Int("moves", 60).Msg("game verified")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug event written at info level: %s", out)
	}
	if !strings.Contains(out, `"moves":60`) || !strings.Contains(out, "game verified") {
		t.Errorf("info event missing: %s", out)
	}

	buf.Reset()
	InitWriter(&buf, true)
	log.Debug().Msg("plan")
	if !strings.Contains(buf.String(), `"level":"debug"`) {
		t.Errorf("debug event dropped with debug enabled: %s", buf.String())
	}
}
