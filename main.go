// mic-transcribe: push-to-talk voice dictation. Hold the hotkey, speak,
// release; the recording is transcribed by a Whisper-style engine and the
// text is injected into the focused application.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/torstefan/mic-transcribe/internal/app"
	"github.com/torstefan/mic-transcribe/internal/capture"
	"github.com/torstefan/mic-transcribe/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to JSON config file")
	writeConfig := flag.String("write-config", "", "write a default config JSON to the given path and exit")
	listDevices := flag.Bool("list-devices", false, "list audio input devices and exit")
	filePath := flag.String("file", "", "transcribe an existing audio file instead of recording")
	outputPath := flag.String("output", "", "output txt path for -file mode")
	fv := config.BindFlags(flag.CommandLine)
	flag.Parse()

	if err := run(*configPath, *writeConfig, *listDevices, *filePath, *outputPath, fv); err != nil {
		fmt.Fprintf(os.Stderr, "[main] %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, writeConfig string, listDevices bool, filePath, outputPath string, fv *config.FlagValues) error {
	if writeConfig != "" {
		if err := config.SaveDefault(writeConfig); err != nil {
			return err
		}
		fmt.Printf("[main] wrote default config to %s\n", writeConfig)
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	config.ApplyFlags(&cfg, fv)
	if err := config.Validate(&cfg); err != nil {
		return err
	}
	config.InitCacheDir(&cfg)

	if listDevices {
		devices, err := capture.ListDevices()
		if err != nil {
			return err
		}
		fmt.Println("Available audio input devices:")
		for _, d := range devices {
			fmt.Printf("  [%d] %s (%d input channels)\n", d.Index, d.Name, d.Channels)
		}
		return nil
	}

	if filePath != "" {
		return app.RunFileMode(cfg, filePath, outputPath)
	}
	return app.RunRecordMode(cfg)
}
