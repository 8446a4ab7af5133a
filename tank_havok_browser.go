package main

import (
	"flag"
	stdlog "log"

	"github.com/wiiskii/tank_havok_browser/config"
	"github.com/wiiskii/tank_havok_browser/logger"
	"github.com/wiiskii/tank_havok_browser/web"
)

func main() {
	var addr, dir, settingsPath, encoding string
	var swapAxes bool
	flag.StringVar(&addr, "i", "", "Address of server")
	flag.StringVar(&dir, "dir", "", "Path to folder with havok tag dumps")
	flag.StringVar(&settingsPath, "settings", "", "Path to settings yaml")
	flag.StringVar(&encoding, "encoding", "", "Name encoding override (charmap name or utf-8)")
	flag.BoolVar(&swapAxes, "swapaxes", true, "Swap y/z axes on export")
	flag.Parse()

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		stdlog.Fatal(err)
	}

	if addr != "" {
		settings.Listen = addr
	}
	if dir != "" {
		settings.DataDir = dir
	}
	if encoding != "" {
		settings.Encoding = encoding
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "swapaxes" {
			settings.SwapAxes = swapAxes
		}
	})

	zl, err := logger.New(logger.Settings{
		File:       settings.Log.File,
		Level:      settings.Log.Level,
		MaxSizeMB:  settings.Log.MaxSizeMB,
		MaxBackups: settings.Log.MaxBackups,
	})
	if err != nil {
		stdlog.Fatal(err)
	}
	defer zl.Sync()

	if err := config.SetEncoding(settings.Encoding); err != nil {
		zl.Sugar().Fatal(err)
	}
	config.SetSwapAxes(settings.SwapAxes)

	if err := web.StartServer(settings.Listen, settings.DataDir, zl); err != nil {
		zl.Sugar().Fatal(err)
	}
}
