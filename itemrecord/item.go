// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package itemrecord

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/fault"
)

// Item - the logical record for one tracked unit of goods
type Item struct {
	FarmAddress account.Address `json:"farmAddress"`
	FarmName    string          `json:"farmName"`
	FarmInfo    string          `json:"farmInfo"`
	Longitude   uint64          `json:"longitude"`
	Latitude    uint64          `json:"latitude"`
	ProductNote string          `json:"productNote"`
	Stage       Stage           `json:"stage"`
	Price       uint64          `json:"price"`
	Owner       account.Address `json:"owner"`
}

// PackedItem - packed records are just a byte slice
type PackedItem []byte

// Pack - convert an item to its fixed size byte form
//
// strings longer than their field are rejected, never truncated
func (item *Item) Pack() (PackedItem, error) {
	if !item.Stage.IsValid() {
		return nil, fault.InvalidStage
	}

	packed := make(PackedItem, PackedLength)

	copy(packed.Field(FarmAddressField), item.FarmAddress[:])

	strings := []struct {
		field Field
		value string
	}{
		{FarmNameField, item.FarmName},
		{FarmInfoField, item.FarmInfo},
		{ProductNoteField, item.ProductNote},
	}
	for _, s := range strings {
		if err := packString(packed.Field(s.field), s.field, s.value); nil != err {
			return nil, err
		}
	}

	binary.BigEndian.PutUint64(packed.Field(LongitudeField), item.Longitude)
	binary.BigEndian.PutUint64(packed.Field(LatitudeField), item.Latitude)
	binary.BigEndian.PutUint64(packed.Field(StageField), uint64(item.Stage))
	binary.BigEndian.PutUint64(packed.Field(PriceField), item.Price)

	copy(packed.Field(OwnerField), item.Owner[:])

	return packed, nil
}

// copy a string into a zero filled field
func packString(buffer []byte, f Field, s string) error {
	if len(s) > f.Length {
		return fmt.Errorf("%s: %w", f.Name, fault.FieldTooLong)
	}

	// the padding is stripped on unpack so a value ending in zero
	// bytes would not read back unchanged
	if 0 != len(s) && 0 == s[len(s)-1] {
		return fmt.Errorf("%s: %w", f.Name, fault.InvalidFieldValue)
	}
	if !utf8.ValidString(s) {
		return fmt.Errorf("%s: %w", f.Name, fault.InvalidFieldValue)
	}

	copy(buffer, s)
	return nil
}

// Field - the bytes of one field
//
// the result shares storage with the packed record
func (packed PackedItem) Field(f Field) []byte {
	return packed[f.Offset:f.Finish()]
}

// Unpack - convert a stored record back to an item
func (packed PackedItem) Unpack() (*Item, error) {
	if PackedLength != len(packed) {
		return nil, fault.MalformedRecord
	}

	item := &Item{
		Longitude: binary.BigEndian.Uint64(packed.Field(LongitudeField)),
		Latitude:  binary.BigEndian.Uint64(packed.Field(LatitudeField)),
		Price:     binary.BigEndian.Uint64(packed.Field(PriceField)),
	}

	stage, err := UnpackStage(packed.Field(StageField))
	if nil != err {
		return nil, err
	}
	item.Stage = stage

	copy(item.FarmAddress[:], packed.Field(FarmAddressField))
	copy(item.Owner[:], packed.Field(OwnerField))

	strings := []struct {
		field Field
		value *string
	}{
		{FarmNameField, &item.FarmName},
		{FarmInfoField, &item.FarmInfo},
		{ProductNoteField, &item.ProductNote},
	}
	for _, s := range strings {
		b := bytes.TrimRight(packed.Field(s.field), "\x00")
		if !utf8.Valid(b) {
			return nil, fmt.Errorf("%s: %w", s.field.Name, fault.MalformedRecord)
		}
		*s.value = string(b)
	}

	return item, nil
}

// PackUint64 - bytes to store in an integer field
func PackUint64(f Field, value uint64) ([]byte, error) {
	if IntegerKind != f.Kind {
		return nil, fault.InvalidField
	}
	buffer := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(buffer, value)
	return buffer, nil
}

// UnpackUint64 - value of an integer field read from storage
func UnpackUint64(f Field, buffer []byte) (uint64, error) {
	if IntegerKind != f.Kind {
		return 0, fault.InvalidField
	}
	if f.Length != len(buffer) {
		return 0, fmt.Errorf("%s: %w", f.Name, fault.MalformedRecord)
	}
	return binary.BigEndian.Uint64(buffer), nil
}

// PackStage - bytes to store in the stage field
func PackStage(stage Stage) ([]byte, error) {
	if !stage.IsValid() {
		return nil, fault.InvalidStage
	}
	return PackUint64(StageField, uint64(stage))
}

// UnpackStage - stage read from storage
func UnpackStage(buffer []byte) (Stage, error) {
	n, err := UnpackUint64(StageField, buffer)
	if nil != err {
		return 0, err
	}
	stage := Stage(n)
	if !stage.IsValid() {
		return 0, fmt.Errorf("%s: %w", StageField.Name, fault.MalformedRecord)
	}
	return stage, nil
}

// PackAddress - bytes to store in an address field
func PackAddress(f Field, address account.Address) ([]byte, error) {
	if AddressKind != f.Kind {
		return nil, fault.InvalidField
	}
	buffer := make([]byte, account.AddressLength)
	copy(buffer, address[:])
	return buffer, nil
}

// UnpackAddress - address read from storage
func UnpackAddress(f Field, buffer []byte) (account.Address, error) {
	if AddressKind != f.Kind {
		return account.Zero, fault.InvalidField
	}
	if f.Length != len(buffer) {
		return account.Zero, fmt.Errorf("%s: %w", f.Name, fault.MalformedRecord)
	}
	return account.FromBytes(buffer)
}
