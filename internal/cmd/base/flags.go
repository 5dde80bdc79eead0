package base

import (
	"bytes"
	"flag"
	"fmt"
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

// FlagSet wraps flag.FlagSet with help output in the style of the other
// HashiCorp CLIs.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	return &FlagSet{FlagSet: f}
}

// Help returns the formatted flag documentation.
func (f *FlagSet) Help() string {
	var out bytes.Buffer

	first := true
	f.VisitAll(func(fl *flag.Flag) {
		if first {
			out.WriteString("\n\nOptions:\n")
			first = false
		}

		example, _ := flag.UnquoteUsage(fl)
		if example != "" {
			fmt.Fprintf(&out, "\n  -%s=<%s>\n", fl.Name, example)
		} else {
			fmt.Fprintf(&out, "\n  -%s\n", fl.Name)
		}
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&out, "    Default: %s\n", fl.DefValue)
		}

		usage := wordwrap.WrapString(fl.Usage, 70)
		for _, line := range strings.Split(usage, "\n") {
			fmt.Fprintf(&out, "    %s\n", line)
		}
	})

	return strings.TrimRight(out.String(), "\n")
}
