package identity

import (
	"strings"
)

// base58Alphabet is the Bitcoin alphabet: no 0, O, I or l.
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Kind classifies an identifier string by shape.
type Kind int

const (
	KindUnknown Kind = iota
	KindAccount
	KindHexAddress
)

func (k Kind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindHexAddress:
		return "hex"
	default:
		return "unknown"
	}
}

// ID is a parsed account identifier.
type ID struct {
	Name     string
	Address  string
	Terminal string
}

// String reassembles the identifier in name@address[/terminal] form.
func (id ID) String() string {
	s := id.Name + "@" + id.Address
	if id.Terminal != "" {
		s += "/" + id.Terminal
	}
	return s
}

// ParseID parses an account identifier. Only the shape is checked; use
// VerifyAddress to check the address checksum.
func ParseID(s string) (ID, error) {
	if s == "" {
		return ID{}, &FormatError{Input: s, Reason: "empty"}
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return ID{}, &FormatError{Input: s, Reason: "contains whitespace"}
	}

	at := strings.IndexByte(s, '@')
	if at < 0 {
		return ID{}, &FormatError{Input: s, Reason: "missing '@'"}
	}
	name, rest := s[:at], s[at+1:]
	if name == "" {
		return ID{}, &FormatError{Input: s, Reason: "empty name"}
	}
	if strings.ContainsAny(name, "/") {
		return ID{}, &FormatError{Input: s, Reason: "name contains '/'"}
	}

	addr, terminal, hasTerminal := strings.Cut(rest, "/")
	if addr == "" {
		return ID{}, &FormatError{Input: s, Reason: "empty address"}
	}
	if strings.IndexByte(addr, '@') >= 0 {
		return ID{}, &FormatError{Input: s, Reason: "more than one '@'"}
	}
	if !isBase58(addr) {
		return ID{}, &FormatError{Input: s, Reason: "address is not base58"}
	}
	if hasTerminal && terminal == "" {
		return ID{}, &FormatError{Input: s, Reason: "empty terminal"}
	}

	return ID{Name: name, Address: addr, Terminal: terminal}, nil
}

// ValidID reports whether s is a well-formed account identifier.
func ValidID(s string) bool {
	_, err := ParseID(s)
	return err == nil
}

// Detect classifies s without verifying checksums.
func Detect(s string) Kind {
	if isHexAddress(s) {
		return KindHexAddress
	}
	if ValidID(s) {
		return KindAccount
	}
	return KindUnknown
}

func isBase58(s string) bool {
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(base58Alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}
