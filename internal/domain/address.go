package domain

import (
	"encoding/hex"
	"errors"
	"strings"
)

// AddressLen is the byte width of an agent address.
const AddressLen = 20

// Address is the opaque fixed-width identifier of an agent. The enclosing
// ledger runtime authenticates senders; this core only keys state by it.
type Address [AddressLen]byte

var ErrInvalidAddress = errors.New("invalid address")

// ParseAddress decodes a 0x-prefixed hex address.
func ParseAddress(s string) (Address, error) {
	var a Address
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != AddressLen {
		return a, ErrInvalidAddress
	}
	copy(a[:], b)
	return a, nil
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(b []byte) error {
	parsed, err := ParseAddress(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
