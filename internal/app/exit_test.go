package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"
)

func TestRun_ExitCodes(t *testing.T) {
	tests := []struct {
		name    string
		action  cli.ActionFunc
		code    int
		message string
	}{
		{"success", func(*cli.Context) error { return nil }, ExitOK, ""},
		{"exit coder", func(*cli.Context) error { return cli.Exit("boom", ExitFailure) }, ExitFailure, "boom\n"},
		{"silent exit coder", func(*cli.Context) error { return cli.Exit("", ExitFailure) }, ExitFailure, ""},
		{"plain error", func(*cli.Context) error { return errors.New("odd") }, ExitUsage, "odd\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			app := &cli.App{
				Name:           "x",
				Writer:         &bytes.Buffer{},
				ErrWriter:      &stderr,
				ExitErrHandler: noExit,
				Action:         tt.action,
			}
			assert.Equal(t, tt.code, Run(context.Background(), app, []string{"x"}))
			assert.Equal(t, tt.message, stderr.String())
		})
	}
}
