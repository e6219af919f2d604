package app

import "testing"

func TestParseArgsDefaultsToSyncless(t *testing.T) {
	cfg, err := ParseArgs(nil)
	if err != nil {
		t.Fatalf("ParseArgs(nil): %v", err)
	}
	if cfg.Variant != "syncless" {
		t.Fatalf("Variant = %q, want syncless", cfg.Variant)
	}
	if cfg.Verbose {
		t.Fatalf("Verbose = true, want false")
	}
}

func TestParseArgsAcceptsEveryKnownVariant(t *testing.T) {
	for _, v := range allVariants {
		cfg, err := ParseArgs([]string{v})
		if err != nil {
			t.Fatalf("ParseArgs([%q]): %v", v, err)
		}
		if cfg.Variant != v {
			t.Fatalf("Variant = %q, want %q", cfg.Variant, v)
		}
	}
}

func TestParseArgsRejectsUnknownVariant(t *testing.T) {
	if _, err := ParseArgs([]string{"not_a_real_variant"}); err == nil {
		t.Fatal("ParseArgs with an unknown variant: got nil error, want one")
	}
}

func TestParseArgsVerboseFlag(t *testing.T) {
	cfg, err := ParseArgs([]string{"--verbose", "serial"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if !cfg.Verbose {
		t.Fatal("Verbose = false, want true")
	}
	if cfg.Variant != "serial" {
		t.Fatalf("Variant = %q, want serial", cfg.Variant)
	}
}

func TestParseArgsVerboseFromEnv(t *testing.T) {
	t.Setenv("VERBOSE", "true")
	cfg, err := ParseArgs([]string{"serial"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if !cfg.Verbose {
		t.Fatal("Verbose = false, want true (from VERBOSE env)")
	}
}
