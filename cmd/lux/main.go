package main

import (
	"flag"
	"log"

	"lux-navigation/lux_nav"
)

func main() {
	var configPath string
	var liveAddr string
	var outputAddr string
	var modeOverride string
	flag.StringVar(&configPath, "config", "config.testing.json", "Path to JSON config.")
	flag.StringVar(&liveAddr, "live-addr", "", "Override live UDP listen addr (host:port).")
	flag.StringVar(&outputAddr, "output-addr", "", "Override output UDP addr (host:port).")
	flag.StringVar(&modeOverride, "mode-override", "", "Force drive mode (WALL_FOLLOW or SEEK_LIGHT).")
	flag.Parse()

	cfg, err := lux_nav.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("load config %q: %v", configPath, err)
	}

	if liveAddr != "" {
		cfg.Live.UDPAddr = liveAddr
	}
	if outputAddr != "" {
		cfg.Output.UDPAddr = outputAddr
	}
	if modeOverride != "" {
		mode, err := lux_nav.ParseDriveMode(modeOverride)
		if err != nil {
			log.Fatalf("invalid mode override %q: %v", modeOverride, err)
		}
		cfg.Nav.DriveModeOverride = &mode
	}

	if err := lux_nav.RunLive(cfg); err != nil {
		log.Fatal(err)
	}
}
