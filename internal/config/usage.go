package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/rangeprod/internal/ui"
)

// setCustomUsage installs a colored usage function on fs.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}
		out := fs.Output()

		fmt.Fprintf(out, "\n%sRange Product Reducer%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Multiplies the integers of [start, end) across parallel partitions.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags] [threads start end]\n\n%sFlags:%s\n", t.Warning, t.Reset, fs.Name(), t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			sig := "-" + f.Name
			if name != "" {
				sig += " " + name
			}
			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, sig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})

		fmt.Fprintf(out, "\n%sEnvironment:%s\n", t.Warning, t.Reset)
		fmt.Fprintf(out, "  %sTHREADS, %sSTART, %sEND and the other flags prefixed with %s\n\n", EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix)
	}
}
