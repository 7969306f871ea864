package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"
)

func TestHoistFlags(t *testing.T) {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}},
	}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"program only", []string{"p"}, []string{"p"}},
		{"flags first", []string{"p", "-f", "mp4", "URL"}, []string{"p", "-f", "mp4", "--", "URL"}},
		{"flags after url", []string{"p", "URL", "-o", "dir", "-q", "-f", "audio"}, []string{"p", "-o", "dir", "-q", "-f", "audio", "--", "URL"}},
		{"inline value", []string{"p", "URL", "--format=webm"}, []string{"p", "--format=webm", "--", "URL"}},
		{"double dash", []string{"p", "-q", "--", "-weird"}, []string{"p", "-q", "--", "-weird"}},
		{"no positional", []string{"p", "-f", "mp4"}, []string{"p", "-f", "mp4"}},
		{"dangling value flag", []string{"p", "URL", "-f"}, []string{"p", "-f", "--", "URL"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hoistFlags(tt.args, flags))
		})
	}
}
