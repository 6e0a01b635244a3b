// Package audio handles device discovery and PCM capture for dictation.
package audio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jfreymuth/pulse"
	pulseproto "github.com/jfreymuth/pulse/proto"
)

// Device describes one Pulse input source surfaced to murmur.
type Device struct {
	Index       uint32
	Name        string
	Description string
	Channels    int
	SampleRate  int
	Default     bool
}

// ListDevices returns available Pulse input sources with format metadata.
func ListDevices(_ context.Context) ([]Device, error) {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName("murmur"),
		pulse.ClientApplicationIconName("audio-input-microphone"),
	)
	if err != nil {
		return nil, fmt.Errorf("connect pulse server: %w", err)
	}
	defer client.Close()

	return listDevices(client)
}

func listDevices(client *pulse.Client) ([]Device, error) {
	defaultSource, err := client.DefaultSource()
	if err != nil {
		return nil, fmt.Errorf("read default source: %w", err)
	}
	defaultID := defaultSource.ID()

	var sourceInfos pulseproto.GetSourceInfoListReply
	if err := client.RawRequest(&pulseproto.GetSourceInfoList{}, &sourceInfos); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	devices := make([]Device, 0, len(sourceInfos))
	for _, source := range sourceInfos {
		if source == nil {
			continue
		}
		devices = append(devices, Device{
			Index:       source.SourceIndex,
			Name:        source.SourceName,
			Description: source.Device,
			Channels:    int(source.SampleSpec.Channels),
			SampleRate:  int(source.SampleSpec.Rate),
			Default:     source.SourceName == defaultID,
		})
	}
	return devices, nil
}

// ResolveDevice resolves an input preference (source name/description
// substring, empty for default) against a device list.
func ResolveDevice(devices []Device, input string) (Device, error) {
	if len(devices) == 0 {
		return Device{}, errors.New("no audio input devices found")
	}

	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" || input == "default" {
		for _, dev := range devices {
			if dev.Default {
				return dev, nil
			}
		}
		return Device{}, errors.New("default audio source is unavailable")
	}

	for _, dev := range devices {
		if deviceMatches(dev, input) {
			return dev, nil
		}
	}
	return Device{}, fmt.Errorf("input_device %q did not match any device", input)
}

// deviceMatches reports whether a search term matches a device name or description.
func deviceMatches(device Device, term string) bool {
	if term == "" {
		return false
	}
	name := strings.ToLower(device.Name)
	desc := strings.ToLower(device.Description)
	return strings.Contains(name, term) || strings.Contains(desc, term)
}

// DescribeDevice formats device metadata for logs and CLI output.
func DescribeDevice(device Device) string {
	description := strings.TrimSpace(device.Description)
	name := strings.TrimSpace(device.Name)
	if description == "" {
		return name
	}
	if name == "" {
		return description
	}
	return fmt.Sprintf("%s (%s)", description, name)
}
