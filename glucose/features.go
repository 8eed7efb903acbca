// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glucose

import (
	"encoding/binary"
	"fmt"
)

// Features is the set of features supported by a glucose meter.
type Features uint16

// Feature is a single glucose meter feature.
type Feature uint16

const (
	FeatureLowBattery          Feature = 1 << 0
	FeatureSensorMalfunction   Feature = 1 << 1
	FeatureSampleSize          Feature = 1 << 2
	FeatureStripInsertionError Feature = 1 << 3
	FeatureStripTypeError      Feature = 1 << 4
	FeatureResultHighLow       Feature = 1 << 5
	FeatureTemperatureHighLow  Feature = 1 << 6
	FeatureReadInterrupt       Feature = 1 << 7
	FeatureGeneralDeviceFault  Feature = 1 << 8
	FeatureTimeFault           Feature = 1 << 9
	FeatureMultipleBond        Feature = 1 << 10

	// Bits 11-15 are reserved for future use.
	featureMask = 1<<11 - 1
)

var featureNames = []string{
	"low battery detection",
	"sensor malfunction detection",
	"sensor sample size",
	"sensor strip insertion error detection",
	"sensor strip type error detection",
	"sensor result high-low detection",
	"sensor temperature high-low detection",
	"sensor read interrupt detection",
	"general device fault",
	"time fault",
	"multiple bond",
}

// Supports returns whether f includes the feature.
func (f Features) Supports(feat Feature) bool {
	return uint16(f)&uint16(feat) != 0
}

func (f Features) String() string {
	return flagString(uint(f), featureNames)
}

func (f *Features) UnmarshalBinary(data []byte) error {
	// https://www.bluetooth.com/specifications/specs/glucose-service-1-0/
	// 3.3 Glucose Feature
	if len(data) != 2 {
		return fmt.Errorf("glucose: feature must be 2 bytes, got %d", len(data))
	}
	*f = Features(binary.LittleEndian.Uint16(data) & featureMask)
	return nil
}
