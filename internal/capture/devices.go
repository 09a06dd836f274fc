package capture

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Device describes one audio input device.
type Device struct {
	Index    int
	Name     string
	Channels int
}

// ListDevices enumerates input-capable audio devices.
func ListDevices() ([]Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init failed: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerate devices failed: %w", err)
	}
	var out []Device
	for i, d := range devices {
		if d.MaxInputChannels < 1 {
			continue
		}
		out = append(out, Device{Index: i, Name: d.Name, Channels: d.MaxInputChannels})
	}
	return out, nil
}
