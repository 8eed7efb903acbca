// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package racp implements the Bluetooth Record Access Control Point
// (0x2a52) used to request stored records from a collector's server,
// as used by the Glucose Service.
//
// Commands are pure values; encoding them does not depend on any
// connection state. Responses are decoded from the indications sent
// on the control point.
package racp

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/kortschak/glucose/internal/wire"
)

// CharacteristicID is the Record Access Control Point characteristic.
const CharacteristicID = "2a52"

// Opcode is a control point op code.
type Opcode uint8

//go:generate go tool golang.org/x/tools/cmd/stringer -type Opcode,Operator,Status -linecomment
const (
	ReportStoredRecords     Opcode = 0x01 // Report Stored Records
	DeleteStoredRecords     Opcode = 0x02 // Delete Stored Records
	AbortOperation          Opcode = 0x03 // Abort Operation
	ReportNumberOfRecords   Opcode = 0x04 // Report Number of Stored Records
	NumberOfRecordsResponse Opcode = 0x05 // Number of Stored Records Response
	ResponseCode            Opcode = 0x06 // Response Code
)

// Operator is a control point operator.
type Operator uint8

const (
	Null           Operator = 0x00 // Null
	AllRecords     Operator = 0x01 // All records
	LessOrEqual    Operator = 0x02 // Less than or equal to
	GreaterOrEqual Operator = 0x03 // Greater than or equal to
	WithinRange    Operator = 0x04 // Within range of (inclusive)
	FirstRecord    Operator = 0x05 // First record
	LastRecord     Operator = 0x06 // Last record
)

// Filter is the operand filter type.
type Filter uint8

const (
	SequenceNumber Filter = 0x01
	UserFacingTime Filter = 0x02
)

// Command is a control point command. The filter type is written when
// it is set or when the command has operands.
type Command struct {
	Opcode   Opcode
	Operator Operator
	Filter   Filter
	Operands []uint16
}

// ReportCount returns the stored record count command with the fixed
// 010401 prefix and no operands.
func ReportCount() Command {
	return Command{Opcode: ReportStoredRecords, Operator: WithinRange, Filter: SequenceNumber}
}

// ReportNumber returns a Report Number of Stored Records command for all
// records. Meters answer it with a NumberOfRecordsResponse.
func ReportNumber() Command {
	return Command{Opcode: ReportNumberOfRecords, Operator: AllRecords}
}

// ReportAll returns a command requesting all stored records.
func ReportAll() Command {
	return Command{Opcode: ReportStoredRecords, Operator: AllRecords, Filter: SequenceNumber}
}

// ReportIndex returns a command requesting the record with sequence
// number n.
func ReportIndex(n uint16) Command {
	return ReportRange(n, n)
}

// ReportRange returns a command requesting the records with sequence
// numbers in [from, to].
func ReportRange(from, to uint16) Command {
	return Command{Opcode: ReportStoredRecords, Operator: WithinRange, Filter: SequenceNumber, Operands: []uint16{from, to}}
}

// ReportAtLeast returns a command requesting the records with sequence
// numbers greater than or equal to n.
func ReportAtLeast(n uint16) Command {
	return Command{Opcode: ReportStoredRecords, Operator: GreaterOrEqual, Filter: SequenceNumber, Operands: []uint16{n}}
}

// ReportAtMost returns a command requesting the records with sequence
// numbers less than or equal to n.
func ReportAtMost(n uint16) Command {
	return Command{Opcode: ReportStoredRecords, Operator: LessOrEqual, Filter: SequenceNumber, Operands: []uint16{n}}
}

// ReportFirst returns a command requesting the oldest stored record.
func ReportFirst() Command {
	return Command{Opcode: ReportStoredRecords, Operator: FirstRecord}
}

// ReportLast returns a command requesting the most recent stored record.
func ReportLast() Command {
	return Command{Opcode: ReportStoredRecords, Operator: LastRecord}
}

// Abort returns a command aborting the procedure in progress.
func Abort() Command {
	return Command{Opcode: AbortOperation, Operator: Null}
}

// Size returns the encoded length of c.
func (c Command) Size() int {
	n := 2
	if c.Filter != 0 || len(c.Operands) != 0 {
		n += 1 + 2*len(c.Operands)
	}
	return n
}

// AppendBinary appends the encoding of c to dst.
func (c Command) AppendBinary(dst []byte) ([]byte, error) {
	dst = append(dst, byte(c.Opcode), byte(c.Operator))
	if c.Filter == 0 && len(c.Operands) == 0 {
		return dst, nil
	}
	dst = append(dst, byte(c.Filter))
	for _, v := range c.Operands {
		dst = binary.LittleEndian.AppendUint16(dst, v)
	}
	return dst, nil
}

// MarshalBinary returns the encoding of c.
func (c Command) MarshalBinary() ([]byte, error) {
	return c.AppendBinary(make([]byte, 0, c.Size()))
}

// Bytes returns the encoding of c.
func (c Command) Bytes() []byte {
	b, _ := c.MarshalBinary()
	return b
}

func (c Command) String() string { return wire.Hex(c.Bytes()) }

// Status is a control point response code value. All values other than
// Success are errors.
type Status uint8

const (
	Reserved              Status = 0x00 // Reserved
	Success               Status = 0x01 // Success
	OpCodeNotSupported    Status = 0x02 // Op Code Not Supported
	InvalidOperator       Status = 0x03 // Invalid Operator
	OperatorNotSupported  Status = 0x04 // Operator Not Supported
	InvalidOperand        Status = 0x05 // Invalid Operand
	NoRecordsFound        Status = 0x06 // No Records Found
	AbortUnsuccessful     Status = 0x07 // Abort Unsuccessful
	ProcedureNotCompleted Status = 0x08 // Procedure Not Completed
	OperandNotSupported   Status = 0x09 // Operand Not Supported

	maxStatus = OperandNotSupported
)

func (s Status) Error() string { return "racp: " + s.String() }

// ErrMalformed is the error wrapped by all malformed response errors.
var ErrMalformed = errors.New("racp: malformed response")

// MalformedError is returned when a response cannot be decoded.
type MalformedError struct {
	Data   []byte
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("racp: malformed response %#x: %s", e.Data, e.Reason)
}

func (e *MalformedError) Unwrap() error { return ErrMalformed }

// Response is a control point indication. Count is valid when Opcode is
// NumberOfRecordsResponse, and Request and Status are valid when Opcode
// is ResponseCode.
type Response struct {
	Opcode  Opcode
	Count   uint16
	Request Opcode
	Status  Status
}

// Packet offsets.
const (
	opcodeOffset  = 0
	operandOffset = 2
	minResponse   = 4
)

func (r *Response) UnmarshalBinary(data []byte) error {
	if len(data) < minResponse {
		return &MalformedError{Data: data, Reason: "short response"}
	}
	switch op := Opcode(data[opcodeOffset]); op {
	case NumberOfRecordsResponse:
		*r = Response{
			Opcode: op,
			Count:  binary.LittleEndian.Uint16(data[operandOffset:]),
		}
	case ResponseCode:
		status := Status(data[len(data)-1])
		if status > maxStatus {
			return &MalformedError{Data: data, Reason: fmt.Sprintf("unknown status: %#x", byte(status))}
		}
		*r = Response{
			Opcode:  op,
			Request: Opcode(data[operandOffset]),
			Status:  status,
		}
	default:
		return &MalformedError{Data: data, Reason: fmt.Sprintf("unknown op code: %#x", byte(op))}
	}
	return nil
}

// Err returns the protocol error carried by a response code, or nil
// for success and for record count responses.
func (r Response) Err() error {
	if r.Opcode != ResponseCode || r.Status == Success {
		return nil
	}
	return r.Status
}

func (r Response) String() string {
	if r.Opcode == NumberOfRecordsResponse {
		return fmt.Sprintf("%s: %d", r.Opcode, r.Count)
	}
	return fmt.Sprintf("%s: %s: %s", r.Opcode, r.Request, r.Status)
}
