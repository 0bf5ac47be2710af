// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package itemrecord

import (
	"github.com/bitmark-inc/supplychaind/account"
	"github.com/bitmark-inc/supplychaind/fault"
)

const (
	uint64ByteSize = 8
	stringByteSize = 32
)

// FieldKind - how the bytes of a field are interpreted
type FieldKind int

// field kinds
const (
	AddressKind FieldKind = iota // 32 byte identity
	StringKind                   // UTF-8, zero padded
	IntegerKind                  // big endian uint64
)

// Field - one byte range of a packed record
type Field struct {
	Name   string
	Offset int
	Length int
	Kind   FieldKind
}

// Finish - offset one past the last byte
func (f Field) Finish() int {
	return f.Offset + f.Length
}

// structure of the item record
var (
	FarmAddressField = Field{Name: "farm_address", Offset: 0, Length: account.AddressLength, Kind: AddressKind}
	FarmNameField    = Field{Name: "farm_name", Offset: FarmAddressField.Finish(), Length: stringByteSize, Kind: StringKind}
	FarmInfoField    = Field{Name: "farm_info", Offset: FarmNameField.Finish(), Length: stringByteSize, Kind: StringKind}
	LongitudeField   = Field{Name: "longitude", Offset: FarmInfoField.Finish(), Length: uint64ByteSize, Kind: IntegerKind}
	LatitudeField    = Field{Name: "latitude", Offset: LongitudeField.Finish(), Length: uint64ByteSize, Kind: IntegerKind}
	ProductNoteField = Field{Name: "product_note", Offset: LatitudeField.Finish(), Length: stringByteSize, Kind: StringKind}
	StageField       = Field{Name: "stage", Offset: ProductNoteField.Finish(), Length: uint64ByteSize, Kind: IntegerKind}
	PriceField       = Field{Name: "price", Offset: StageField.Finish(), Length: uint64ByteSize, Kind: IntegerKind}
	OwnerField       = Field{Name: "owner", Offset: PriceField.Finish(), Length: account.AddressLength, Kind: AddressKind}
)

// Layout - all fields in storage order
var Layout = []Field{
	FarmAddressField,
	FarmNameField,
	FarmInfoField,
	LongitudeField,
	LatitudeField,
	ProductNoteField,
	StageField,
	PriceField,
	OwnerField,
}

// PackedLength - size of every stored record
const PackedLength = 2*account.AddressLength + 3*stringByteSize + 4*uint64ByteSize

// FieldByName - look up a field from its name
func FieldByName(name string) (Field, error) {
	for _, f := range Layout {
		if f.Name == name {
			return f, nil
		}
	}
	return Field{}, fault.InvalidField
}
