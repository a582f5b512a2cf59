package diag

import (
	"fmt"
)

// Code identifies a validation rule. The numeric ranges group codes by
// kind: 3000+ are errors, 3100+ are style/documentation warnings.
type Code uint16

const (
	UnknownCode Code = 0

	// Errors
	ValInvalidPacketName                     Code = 3001
	ValInvalidFieldName                      Code = 3002
	ValKeywordCollision                      Code = 3003
	ValDuplicateFieldName                    Code = 3004
	ValInvalidCommandID                      Code = 3005
	ValInvalidFieldType                      Code = 3006
	ValInvalidBitField                       Code = 3007
	ValBitFieldOnInvalidType                 Code = 3008
	ValBitFieldLengthOverflow                Code = 3009
	ValBitFieldStraddleBoundaryWithoutPacked Code = 3010

	// Warnings
	ValNamingConventionPacket    Code = 3101
	ValMissingComment            Code = 3102
	ValBitFieldMissingPackedAttr Code = 3103
	ValBitFieldStraddleBoundary  Code = 3104
)

var codeDescription = map[Code]string{
	UnknownCode:                              "Unknown diagnostic",
	ValInvalidPacketName:                     "Invalid packet name",
	ValInvalidFieldName:                      "Invalid field name",
	ValKeywordCollision:                      "Field name is a reserved keyword",
	ValDuplicateFieldName:                    "Duplicate field name",
	ValInvalidCommandID:                      "Invalid command id",
	ValInvalidFieldType:                      "Missing or invalid field type",
	ValInvalidBitField:                       "Invalid bit-field width",
	ValBitFieldOnInvalidType:                 "Bit-field on a type that cannot carry one",
	ValBitFieldLengthOverflow:                "Bit-field wider than its type",
	ValBitFieldStraddleBoundaryWithoutPacked: "Bit-fields straddle a storage unit without packing",
	ValNamingConventionPacket:                "Packet name is not PascalCase",
	ValMissingComment:                        "Field has no comment",
	ValBitFieldMissingPackedAttr:             "Bit-field in an unpacked struct",
	ValBitFieldStraddleBoundary:              "Bit-field fills its whole storage unit",
}

func (c Code) ID() string {
	if c >= 3000 && c < 4000 {
		return fmt.Sprintf("VAL%04d", int(c))
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
