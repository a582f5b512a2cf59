// Package validator walks the span-tracked JSON tree of a packet
// definition and accumulates diagnostics. It never short-circuits:
// the whole schema is checked in one pass, so a single run reports
// every problem at once. The only exception is a field whose
// bit-field failed an earlier check; it is excluded from the
// boundary-straddling analysis.
package validator

import (
	"fmt"
	"math"
	"strings"

	"fortio.org/safecast"

	"rplc/internal/cpp"
	"rplc/internal/diag"
	"rplc/internal/schema"
	"rplc/internal/source"
	"rplc/internal/spanjson"
)

// bitFieldInfo is one validated bit-field, accumulated in declaration
// order for the cross-field boundary pass.
type bitFieldInfo struct {
	name     string
	typeBits uint8
	width    uint8
}

// Validate inspects one packet definition and returns its diagnostics.
// Malformed JSON is a *spanjson.ParseError, not a diagnostic: a text
// whose syntax cannot even be inspected yields no diagnostic list.
func Validate(file *source.File) (*diag.Bag, error) {
	root, err := spanjson.Parse(file)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag()
	validatePacket(root, bag)
	return bag, nil
}

// ValidateAll accepts the single-object form or the array form,
// telling them apart by the shape of the parsed tree, never by whether
// the clean model decodes. Each packet of an array is validated
// independently against its own re-serialized text (added to fs as a
// virtual file), and the diagnostic lists are concatenated in array
// order.
func ValidateAll(fs *source.FileSet, id source.FileID) (*diag.Bag, error) {
	file := fs.Get(id)
	root, err := spanjson.Parse(file)
	if err != nil {
		return nil, err
	}

	elems, isArray := root.AsArray()
	if !isArray {
		// Single form: the rules run on the span tree directly, so a
		// schema with missing keys still gets its violations reported.
		bag := diag.NewBag()
		validatePacket(root, bag)
		return bag, nil
	}

	packets, err := schema.DecodePackets(file.Content)
	if err != nil {
		// Элементы без чистой модели проверяем на месте; spans
		// остаются относительно исходного текста.
		bag := diag.NewBag()
		for _, el := range elems {
			validatePacket(el, bag)
		}
		return bag, nil
	}

	bag := diag.NewBag()
	for i, p := range packets {
		data, err := schema.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("re-serialize packet %d: %w", i, err)
		}
		sub := fs.AddVirtual(fmt.Sprintf("%s#%d", file.Path, i), data)
		sb, err := Validate(fs.Get(sub))
		if err != nil {
			return nil, err
		}
		bag.Merge(sb)
	}
	return bag, nil
}

func validatePacket(root *spanjson.Value, bag *diag.Bag) {
	if _, ok := root.AsObject(); !ok {
		return
	}

	// Rule 1: packet name legality, then naming convention.
	if nameNode := root.Get("packet_name"); nameNode != nil {
		if name, ok := nameNode.AsString(); ok {
			if !cpp.IsIdentifier(name) {
				bag.Report(diag.InvalidPacketName{Name: name}, nameNode.Span)
			} else if cpp.StartsLower(name) {
				bag.Report(diag.NamingConventionPacket{Name: name}, nameNode.Span)
			}
		}
	}

	// Rule 2: command id must pass the codec.
	if idNode := root.Get("command_id"); idNode != nil {
		if id, ok := idNode.AsString(); ok {
			if _, err := cpp.ParseCommandID(id); err != nil {
				bag.Report(diag.InvalidCommandID{ID: id}, idNode.Span)
			}
		}
	}

	// Rule 3: packed flag, default true. Never diagnosed by itself.
	isPacked := true
	if b, ok := root.Get("packed").AsBool(); ok {
		isPacked = b
	}

	fieldsNode := root.Get("fields")
	fields, ok := fieldsNode.AsArray()
	if !ok {
		return
	}

	seen := make(map[string]struct{}, len(fields))
	bitFields := make([]bitFieldInfo, 0, len(fields))

	// Rule 4: per field, in declaration order.
	for _, fieldNode := range fields {
		if _, ok := fieldNode.AsObject(); !ok {
			continue
		}

		fieldName := ""
		nameNode := fieldNode.Get("name")
		if name, ok := nameNode.AsString(); ok {
			if !cpp.IsIdentifier(name) {
				bag.Report(diag.InvalidFieldName{Name: name}, nameNode.Span)
			}
			if cpp.IsKeyword(name) {
				bag.Report(diag.KeywordCollision{Name: name}, nameNode.Span)
			}
			if _, dup := seen[name]; dup {
				// Reported at the second and later occurrences only.
				bag.Report(diag.DuplicateFieldName{Name: name}, nameNode.Span)
			} else {
				seen[name] = struct{}{}
			}
			fieldName = name
		}

		fieldType, hasType := "", false
		if tyNode := fieldNode.Get("type"); tyNode != nil {
			if ty, ok := tyNode.AsString(); ok {
				fieldType, hasType = ty, true
			} else {
				bag.Report(diag.InvalidFieldType{Field: fieldName}, tyNode.Span)
			}
		} else {
			bag.Report(diag.InvalidFieldType{Field: fieldName}, fieldNode.Span)
		}

		validBitField := validateBitField(fieldNode, fieldName, fieldType, hasType, bag, &bitFields)

		if validBitField && !isPacked {
			bag.Report(diag.BitFieldMissingPackedAttr{Field: fieldName}, fieldNode.Span)
		}

		// Comment presence is advisory.
		hasComment := false
		if c, ok := fieldNode.Get("comment").AsString(); ok {
			hasComment = strings.TrimSpace(c) != ""
		}
		if !hasComment {
			target := fieldNode
			if nameNode != nil {
				target = nameNode
			}
			name := "unknown"
			if n, ok := nameNode.AsString(); ok {
				name = n
			}
			bag.Report(diag.MissingComment{Field: name}, target.Span)
		}
	}

	// Rule 5: adjacent bit-fields must not straddle a storage unit when
	// the struct is unpacked. Deliberately pairwise: a running bit
	// offset across three or more consecutive bit-fields is not kept,
	// so some overflow combinations go undetected.
	if !isPacked && len(bitFields) > 1 {
		for i := 1; i < len(bitFields); i++ {
			prev, curr := bitFields[i-1], bitFields[i]
			if int(prev.width)+int(curr.width) > int(curr.typeBits) {
				bag.Report(diag.BitFieldStraddleBoundaryWithoutPacked{
					Prev:      prev.name,
					Field:     curr.name,
					PrevWidth: prev.width,
					Width:     curr.width,
					TypeBits:  curr.typeBits,
				}, fieldsNode.Span)
			}
		}
	}

	// Rule 6: a bit-field filling its whole storage unit gains nothing.
	for _, bf := range bitFields {
		if bf.width == bf.typeBits && !isPacked {
			bag.Report(diag.BitFieldStraddleBoundary{Field: bf.name}, fieldsNode.Span)
		}
	}
}

// validateBitField runs checks a..e of rule 4 and appends valid
// bit-fields to the accumulator. The checks cascade: a failure stops
// the chain and keeps the field out of the boundary pass.
func validateBitField(
	fieldNode *spanjson.Value,
	fieldName, fieldType string,
	hasType bool,
	bag *diag.Bag,
	acc *[]bitFieldInfo,
) bool {
	bfNode := fieldNode.Get("bit_field")
	if bfNode == nil || bfNode.IsNull() {
		return false
	}

	if !bfNode.IsNumber() {
		bag.Report(diag.InvalidBitField{Field: fieldName}, bfNode.Span)
		return false
	}
	width, isInt := bfNode.AsInt()
	if !isInt {
		bag.Report(diag.InvalidBitField{Field: fieldName}, bfNode.Span)
		return false
	}
	if width <= 0 {
		bag.Report(diag.InvalidBitField{Field: fieldName}, bfNode.Span)
		return false
	}
	if !hasType {
		// No usable type at all; already reported as InvalidFieldType.
		return false
	}
	typeBits, ok := cpp.BitWidth(fieldType)
	if !ok {
		bag.Report(diag.BitFieldOnInvalidType{Field: fieldName, Type: fieldType}, bfNode.Span)
		return false
	}
	if width > int64(typeBits) {
		requested, err := safecast.Conv[uint8](width)
		if err != nil {
			requested = math.MaxUint8
		}
		bag.Report(diag.BitFieldLengthOverflow{
			Field:    fieldName,
			Width:    requested,
			TypeBits: typeBits,
		}, bfNode.Span)
		return false
	}

	*acc = append(*acc, bitFieldInfo{
		name:     fieldName,
		typeBits: typeBits,
		width:    uint8(width),
	})
	return true
}
