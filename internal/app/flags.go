package app

import (
	"strings"

	"github.com/urfave/cli/v2"
)

// hoistFlags moves flags in front of positional arguments so that
// "prog URL -f mp4" parses like "prog -f mp4 URL". args[0] is the program
// name; everything after "--" stays positional.
func hoistFlags(args []string, flags []cli.Flag) []string {
	if len(args) < 2 {
		return args
	}
	valued := valuedFlagNames(flags)

	out := make([]string, 0, len(args)+1)
	out = append(out, args[0])
	var positional []string

	for i := 1; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(arg) < 2 || !strings.HasPrefix(arg, "-") {
			positional = append(positional, arg)
			continue
		}

		out = append(out, arg)
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if valued[name] && i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
	}

	if len(positional) > 0 {
		out = append(out, "--")
		out = append(out, positional...)
	}
	return out
}

// valuedFlagNames returns every name of the flags that take a value
func valuedFlagNames(flags []cli.Flag) map[string]bool {
	valued := make(map[string]bool)
	for _, f := range flags {
		if _, ok := f.(*cli.BoolFlag); ok {
			continue
		}
		for _, name := range f.Names() {
			valued[name] = true
		}
	}
	return valued
}
