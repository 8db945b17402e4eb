package model

import "fmt"

// Size is a closed set of garment and frame sizes. Writes only accept values
// from this set; rows that predate the enumeration keep their stored value.
type Size string

const (
	SizeXS Size = "XS"
	SizeS  Size = "S"
	SizeM  Size = "M"
	SizeL  Size = "L"
	Size38 Size = "38"
	Size40 Size = "40"
	Size42 Size = "42"
	Size44 Size = "44"
	Size46 Size = "46"
	Size48 Size = "48"
	Size50 Size = "50"
	Size52 Size = "52"
	Size54 Size = "54"
	Size56 Size = "56"
	Size58 Size = "58"
	Size60 Size = "60"
	Size62 Size = "62"
	Size70 Size = "70"
)

var validSizes = map[Size]struct{}{
	SizeXS: {}, SizeS: {}, SizeM: {}, SizeL: {},
	Size38: {}, Size40: {}, Size42: {}, Size44: {}, Size46: {}, Size48: {},
	Size50: {}, Size52: {}, Size54: {}, Size56: {}, Size58: {}, Size60: {},
	Size62: {}, Size70: {},
}

// Validate implements the Enum interface checked by the custom `enum`
// validator tag.
func (s Size) Validate() error {
	if _, ok := validSizes[s]; !ok {
		return fmt.Errorf("invalid size: %q", string(s))
	}
	return nil
}

func (s Size) String() string {
	return string(s)
}
