package main

import (
	"regexp"
	"strings"

	"github.com/spf13/pflag"
)

var negativeInt = regexp.MustCompile(`^-\d+$`)

// separatePositionals moves positional arguments behind a "--" separator when
// any of them is a negative integer, so pflag does not read it as a shorthand
// flag. Flags and their values keep their place ahead of the separator.
func separatePositionals(args []string, flags *pflag.FlagSet) []string {
	var flagArgs, positionals, rest []string
	hasNegative := false

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			rest = args[i+1:]
			i = len(args)
		case negativeInt.MatchString(arg):
			hasNegative = true
			positionals = append(positionals, arg)
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			flagArgs = append(flagArgs, arg)
			if takesValue(arg, flags) && i+1 < len(args) {
				i++
				flagArgs = append(flagArgs, args[i])
			}
		default:
			positionals = append(positionals, arg)
		}
	}

	if !hasNegative {
		return args
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, flagArgs...)
	out = append(out, "--")
	out = append(out, positionals...)
	return append(out, rest...)
}

func takesValue(arg string, flags *pflag.FlagSet) bool {
	if !strings.HasPrefix(arg, "--") || strings.Contains(arg, "=") {
		return false
	}
	flag := flags.Lookup(strings.TrimPrefix(arg, "--"))
	return flag != nil && flag.NoOptDefVal == ""
}
