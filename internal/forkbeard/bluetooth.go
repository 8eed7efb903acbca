// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package forkbeard provides helper functions for interacting with
// Bluetooth devices.
package forkbeard

import (
	"errors"
	"fmt"
	"io"

	"tinygo.org/x/bluetooth"
)

// ErrNotFound is returned when a requested service or characteristic
// is not provided by a device.
var ErrNotFound = errors.New("not found")

// DeviceCharacteristic returns a specified bluetooth.DeviceCharacteristic
// from a Bluetooth service.
func DeviceCharacteristic(dev *bluetooth.Device, srvID, charID bluetooth.UUID) (bluetooth.DeviceCharacteristic, error) {
	chars, err := Characteristics(dev, srvID, charID)
	if err != nil {
		return bluetooth.DeviceCharacteristic{}, err
	}
	char, ok := chars[charID]
	if !ok {
		return bluetooth.DeviceCharacteristic{}, fmt.Errorf("device characteristic %s %w", charID, ErrNotFound)
	}
	return char, nil
}

// Characteristics returns the requested characteristics of a Bluetooth
// service keyed by UUID. Characteristics not provided by the service
// are absent from the returned map.
func Characteristics(dev *bluetooth.Device, srvID bluetooth.UUID, charIDs ...bluetooth.UUID) (map[bluetooth.UUID]bluetooth.DeviceCharacteristic, error) {
	srv, err := dev.DiscoverServices([]bluetooth.UUID{srvID})
	if err != nil {
		return nil, fmt.Errorf("failed to discover service %s: %w", srvID, err)
	}
	if len(srv) == 0 {
		return nil, fmt.Errorf("service %s %w", srvID, ErrNotFound)
	}
	chars, err := srv[0].DiscoverCharacteristics(charIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to discover characteristics of %s: %w", srvID, err)
	}
	found := make(map[bluetooth.UUID]bluetooth.DeviceCharacteristic, len(chars))
	for _, c := range chars {
		found[c.UUID()] = c
	}
	return found, nil
}

// ReadCharacteristic reads data from a Bluetooth characteristic.
func ReadCharacteristic(char bluetooth.DeviceCharacteristic) ([]byte, error) {
	mtu, err := char.GetMTU()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain mtu of characteristic: %w", err)
	}
	buf := make([]byte, mtu)
	n, err := char.Read(buf)
	if err != nil && err != io.EOF {
		return buf[:n], fmt.Errorf("failed to read response from characteristic: %w", err)
	}
	return buf[:n], nil
}
