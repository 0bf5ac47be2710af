// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	AllocationFailed           = ProcessError("storage allocation failed")
	AlreadyInitialised         = ExistsError("already initialised")
	BoundsExceeded             = LengthError("byte range exceeds allocated size")
	CertificateFileExists      = ExistsError("certificate file already exists")
	DatabaseIsNotSet           = ProcessError("database is not set")
	DuplicateRecord            = ExistsError("record already exists for this key")
	FieldTooLong               = LengthError("field value exceeds its declared width")
	InvalidApplication         = InvalidError("invalid application address")
	InvalidBackend             = InvalidError("invalid storage backend")
	InvalidChecksum            = InvalidError("invalid checksum")
	InvalidCount               = InvalidError("invalid count")
	InvalidCursor              = InvalidError("invalid cursor")
	InvalidField               = InvalidError("invalid field")
	InvalidFieldValue          = InvalidError("field value cannot be stored")
	InvalidIPAddress           = InvalidError("invalid IP address")
	InvalidKey                 = InvalidError("invalid key")
	InvalidOperation           = InvalidError("invalid operation")
	InvalidPortNumber          = InvalidError("invalid port number")
	InvalidKeyLength           = InvalidError("invalid key length")
	InvalidPrivateKeyFile      = InvalidError("invalid private key file")
	InvalidPublicKeyFile       = InvalidError("invalid public key file")
	InvalidStage               = RecordError("invalid stage value")
	InvalidStructPointer       = InvalidError("invalid struct pointer")
	KeyFileAlreadyExists       = ExistsError("key file already exists")
	MalformedRecord            = RecordError("malformed record")
	MissingParameters          = InvalidError("missing parameters")
	NotAvailableInReadOnlyMode = InvalidError("not available in read-only mode")
	NotConnected               = NotFoundError("not connected")
	NotInitialised             = NotFoundError("not initialised")
	RateLimiting               = InvalidError("rate limiting")
	RecordNotFound             = NotFoundError("record not found")
	TransactionNotInUse        = ProcessError("transaction is not in use")
	WrongDatabaseVersion       = RecordError("wrong database version")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrExists(e error) bool   { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool  { var x InvalidError; return errors.As(e, &x) }
func IsErrLength(e error) bool   { var x LengthError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool  { var x ProcessError; return errors.As(e, &x) }
func IsErrRecord(e error) bool   { var x RecordError; return errors.As(e, &x) }

// InvalidTransitionError - a record was not in the stage an operation requires
//
// the stages are kept as plain strings so that this package does not
// depend on the record layout
type InvalidTransitionError struct {
	Expected string
	Actual   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: expected: %s  actual: %s", e.Expected, e.Actual)
}

// FundingError - a funding or asset transfer precondition was not met
type FundingError struct {
	Check string
}

func (e *FundingError) Error() string {
	return fmt.Sprintf("funding precondition failed: %s", e.Check)
}

// IsErrTransition - true for an invalid stage transition
func IsErrTransition(e error) bool {
	var x *InvalidTransitionError
	return errors.As(e, &x)
}

// IsErrFunding - true for a failed funding check
func IsErrFunding(e error) bool {
	var x *FundingError
	return errors.As(e, &x)
}
