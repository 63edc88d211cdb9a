package enums

import "fmt"

// ClientType segments customers into the B2B pricing grid tiers.
type ClientType string

const (
	ClientTypeWholesaler  ClientType = "wholesaler"
	ClientTypeBigRetail   ClientType = "big_retail"
	ClientTypeSmallRetail ClientType = "small_retail"
	ClientTypeRegular     ClientType = "regular"
)

var validClientTypes = []ClientType{
	ClientTypeWholesaler,
	ClientTypeBigRetail,
	ClientTypeSmallRetail,
	ClientTypeRegular,
}

// String implements fmt.Stringer.
func (c ClientType) String() string {
	return string(c)
}

// IsValid reports whether the value is known.
func (c ClientType) IsValid() bool {
	for _, candidate := range validClientTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsB2BTier reports whether the client type maps to a grid price column.
func (c ClientType) IsB2BTier() bool {
	switch c {
	case ClientTypeWholesaler, ClientTypeBigRetail, ClientTypeSmallRetail:
		return true
	}
	return false
}

// ParseClientType converts raw input into a ClientType.
func ParseClientType(value string) (ClientType, error) {
	for _, candidate := range validClientTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid client type %q", value)
}
