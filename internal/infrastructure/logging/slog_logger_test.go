package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for input, expected := range tests {
		if got := ParseLevel(input); got != expected {
			t.Errorf("ParseLevel(%q): esperava %s, obteve %s", input, expected, got)
		}
	}
}

func TestSlogLogger(t *testing.T) {
	t.Run("escreve JSON com campos do componente", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Component(NewSlogLoggerWithWriter(&buf, "info"), "ledger")

		logger.Info("balance computed", FieldUserID, 7)

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("saída não é JSON: %v", err)
		}
		if entry["msg"] != "balance computed" {
			t.Errorf("mensagem inesperada: %v", entry["msg"])
		}
		if entry[FieldComponent] != "ledger" {
			t.Errorf("componente inesperado: %v", entry[FieldComponent])
		}
		if entry[FieldUserID] != float64(7) {
			t.Errorf("user_id inesperado: %v", entry[FieldUserID])
		}
	})

	t.Run("respeita o nível configurado", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewSlogLoggerWithWriter(&buf, "warn")

		logger.Info("ignorada")
		logger.Debug("ignorada")
		if buf.Len() != 0 {
			t.Errorf("esperava saída vazia, obteve %q", buf.String())
		}

		logger.Warn("registrada")
		if buf.Len() == 0 {
			t.Error("esperava mensagem de warn")
		}
	})
}
