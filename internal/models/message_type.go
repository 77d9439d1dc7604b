package models

import (
	"strings"

	"fjacquet/swift-csv/internal/parsererror"
)

// MessageType is the detected SWIFT type code of a message, for example
// "202", "202.COV", "103" or "910". The zero value is not a valid type.
type MessageType string

const (
	TypeMT202    MessageType = "202"
	TypeMT202COV MessageType = "202.COV"
	TypeMT103    MessageType = "103"
	TypeMT910    MessageType = "910"
	TypeUnknown  MessageType = "unknown"
)

// supportedBases lists the base type codes that have an extractor.
var supportedBases = map[string]bool{
	"202": true,
	"103": true,
	"910": true,
}

// ParseMessageType maps a detected code ("202", "202.cov", "910") to a MessageType.
// Codes whose base is not 202, 103 or 910 map to TypeUnknown. Dotted suffixes are
// only meaningful for 202 and are dropped for the other bases.
func ParseMessageType(code string) MessageType {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return TypeUnknown
	}
	base, suffix, hasSuffix := strings.Cut(code, ".")
	if !supportedBases[base] {
		return TypeUnknown
	}
	if hasSuffix && base == "202" && suffix != "" {
		return MessageType(base + "." + suffix)
	}
	return MessageType(base)
}

// Base returns the three-digit base code ("202" for "202.COV").
func (t MessageType) Base() string {
	base, _, _ := strings.Cut(string(t), ".")
	return base
}

// Suffix returns the dotted suffix without the dot ("COV" for "202.COV").
func (t MessageType) Suffix() string {
	_, suffix, _ := strings.Cut(string(t), ".")
	return suffix
}

// IsSupported reports whether an extractor exists for the type.
func (t MessageType) IsSupported() bool {
	return t != TypeUnknown && supportedBases[t.Base()]
}

// String renders the display form: "fin.202", "fin.202.COV" or "unknown".
func (t MessageType) String() string {
	if !t.IsSupported() {
		return string(TypeUnknown)
	}
	return "fin." + string(t)
}

// MarshalText renders the display form for JSON and YAML.
func (t MessageType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts both "fin.202.COV" and "202.COV".
func (t *MessageType) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if len(s) > 4 && strings.EqualFold(s[:4], "fin.") {
		s = s[4:]
	}
	*t = ParseMessageType(s)
	return nil
}

// MarshalCSV renders the display form for gocsv.
func (t MessageType) MarshalCSV() (string, error) {
	return t.String(), nil
}

// Direction tells whether messages were received or sent by the reporting bank.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// ParseDirection validates a direction flag. An empty string means incoming.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", DirectionIncoming:
		return DirectionIncoming, nil
	case DirectionOutgoing:
		return DirectionOutgoing, nil
	default:
		return "", &parsererror.InvalidFormatError{
			FilePath:       "direction",
			ExpectedFormat: "incoming or outgoing",
			Msg:            "unknown direction " + s,
		}
	}
}

// IsOutgoing reports whether d is DirectionOutgoing.
func (d Direction) IsOutgoing() bool {
	return d == DirectionOutgoing
}
