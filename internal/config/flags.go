package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagSkin   = flag.Int("skin", -1, "Skin id")
	flagHair   = flag.Int("hair", 0, "Hair id")
	flagFace   = flag.Int("face", 0, "Face id")
	flagEquip  = flag.String("equip", "", "Comma separated equip ids")
	flagSeed   = flag.Int64("seed", 0, "Random seed for attack poses")
	flagMute   = flag.Bool("mute", false, "Disable sounds")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// ParseIDs parses a comma separated list of item ids.
func ParseIDs(s string) ([]int32, error) {
	var ids []int32
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		id, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", f, err)
		}
		ids = append(ids, int32(id))
	}
	return ids, nil
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSkin >= 0 {
		cfg.Look.Skin = int32(*flagSkin)
	}
	if *flagHair > 0 {
		cfg.Look.Hair = int32(*flagHair)
	}
	if *flagFace > 0 {
		cfg.Look.Face = int32(*flagFace)
	}
	if *flagEquip != "" {
		ids, err := ParseIDs(*flagEquip)
		if err != nil {
			return fmt.Errorf("-equip: %w", err)
		}
		cfg.Look.Equips = ids
	}
	if *flagSeed != 0 {
		cfg.Look.Seed = *flagSeed
	}
	if *flagMute {
		cfg.Audio.Muted = true
	}
	return nil
}
