package app

import (
	"os"
	"strconv"
	"strings"

	"code.hybscloud.com/silo/internal/errs"
	"code.hybscloud.com/silo/queue"
	flashflags "github.com/agilira/flash-flags"
)

// allVariants lists every value the single positional CLI argument
// accepts: the fourteen ProducerConsumerDriver queue names
// (queue.Variants), plus the two whole-driver selections that never touch
// a shared queue at all.
var allVariants = append([]string{"syncless", "serial"}, queue.Variants...)

// Config is the fully parsed, validated command line plus environment.
type Config struct {
	Variant string
	Verbose bool
}

// ParseArgs parses argv (as in os.Args[1:]): one positional variant
// argument, defaulting to "syncless", plus a --verbose flag parsed with
// flash-flags that is OR'd with the VERBOSE environment variable the
// original reads. The variant is plucked out before flag parsing so it may
// appear on either side of the flags.
func ParseArgs(argv []string) (Config, error) {
	variant := "syncless"
	flagArgs := make([]string, 0, len(argv))
	positionalSeen := false
	for _, arg := range argv {
		if !positionalSeen && !strings.HasPrefix(arg, "-") {
			variant = strings.ToLower(arg)
			positionalSeen = true
			continue
		}
		flagArgs = append(flagArgs, arg)
	}
	if !isKnownVariant(variant) {
		return Config{}, errs.Newf(errs.Configuration, "unknown variant %q (want one of %v)", variant, allVariants)
	}

	fs := flashflags.New("silo")
	verboseFlag := fs.Bool("verbose", false, "log every milestone and print candidates to stdout")
	if err := fs.Parse(flagArgs); err != nil {
		return Config{}, errs.Newf(errs.Configuration, "parsing arguments: %v", err)
	}

	verboseEnv, _ := strconv.ParseBool(os.Getenv("VERBOSE"))
	cfg := Config{
		Variant: variant,
		Verbose: *verboseFlag || verboseEnv,
	}
	return cfg, nil
}

func isKnownVariant(name string) bool {
	for _, v := range allVariants {
		if v == name {
			return true
		}
	}
	return false
}
