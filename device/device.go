// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package device implements reading of the standard 180a Bluetooth
// device information service and 180f battery service characteristics
// of a connected meter.
package device

import (
	"bytes"
	"errors"
	"fmt"

	"tinygo.org/x/bluetooth"

	"github.com/kortschak/glucose/internal/forkbeard"
)

const (
	InformationServiceID = "180a"
	ManufacturerNameID   = "2a29"
	ModelNumberID        = "2a24"
	SerialNumberID       = "2a25"
	FirmwareRevisionID   = "2a26"

	BatteryServiceID      = "180f"
	LevelCharacteristicID = "2a19"
)

var (
	infoService      = must(bluetooth.ParseUUID(InformationServiceID))
	manufacturerName = must(bluetooth.ParseUUID(ManufacturerNameID))
	modelNumber      = must(bluetooth.ParseUUID(ModelNumberID))
	serialNumber     = must(bluetooth.ParseUUID(SerialNumberID))
	firmwareRevision = must(bluetooth.ParseUUID(FirmwareRevisionID))

	batteryService             = must(bluetooth.ParseUUID(BatteryServiceID))
	batteryLevelCharacteristic = must(bluetooth.ParseUUID(LevelCharacteristicID))
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Info is the identity and battery state of a meter. Strings the meter
// does not provide are empty and Battery is -1 when the meter has no
// battery service.
type Info struct {
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	Serial       string `json:"serial,omitempty"`
	Firmware     string `json:"firmware,omitempty"`
	Battery      int    `json:"battery"` // percent
}

// Read returns the device information and battery level for the
// provided Bluetooth device.
func Read(dev *bluetooth.Device) (Info, error) {
	// https://www.bluetooth.com/specifications/specs/device-information-service-1-1/

	info := Info{Battery: -1}
	chars, err := forkbeard.Characteristics(dev, infoService, manufacturerName, modelNumber, serialNumber, firmwareRevision)
	switch {
	case errors.Is(err, forkbeard.ErrNotFound):
	case err != nil:
		return info, fmt.Errorf("failed to get device information characteristics: %w", err)
	default:
		for _, f := range []struct {
			id  bluetooth.UUID
			dst *string
		}{
			{id: manufacturerName, dst: &info.Manufacturer},
			{id: modelNumber, dst: &info.Model},
			{id: serialNumber, dst: &info.Serial},
			{id: firmwareRevision, dst: &info.Firmware},
		} {
			char, ok := chars[f.id]
			if !ok {
				continue
			}
			resp, err := forkbeard.ReadCharacteristic(char)
			if err != nil {
				return info, fmt.Errorf("failed read device information characteristic %s: %w", f.id, err)
			}
			*f.dst = utf8String(resp)
		}
	}

	level, err := Level(dev)
	switch {
	case errors.Is(err, forkbeard.ErrNotFound):
	case err != nil:
		return info, err
	default:
		info.Battery = level
	}
	return info, nil
}

// utf8String returns the value of a UTF-8 string characteristic. Some
// meters pad values with NUL bytes.
func utf8String(b []byte) string {
	return string(bytes.TrimRight(b, "\x00"))
}

// Level returns the battery level for the provided Bluetooth device.
func Level(dev *bluetooth.Device) (int, error) {
	// https://www.bluetooth.com/specifications/specs/battery-service/

	batteryDevice, err := forkbeard.DeviceCharacteristic(dev, batteryService, batteryLevelCharacteristic)
	if err != nil {
		return 0, fmt.Errorf("failed to get battery device characteristic: %w", err)
	}
	resp, err := forkbeard.ReadCharacteristic(batteryDevice)
	if err != nil {
		return 0, fmt.Errorf("failed read battery characteristic: %w", err)
	}
	return batteryLevel(resp)
}

func batteryLevel(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, errors.New("empty battery level")
	}
	if b[0] > 100 {
		return 0, fmt.Errorf("invalid battery level: %d", b[0])
	}
	return int(b[0]), nil
}
