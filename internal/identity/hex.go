package identity

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

func isHexAddress(s string) bool {
	if len(s) != 42 || !(strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		return false
	}
	_, err := hex.DecodeString(s[2:])
	return err == nil
}

// ChecksumHex returns the EIP-55 mixed-case form of a hex address.
// The input must already have the 0x + 40 hex digit shape.
func ChecksumHex(s string) string {
	lower := strings.ToLower(s[2:])

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	hash := h.Sum(nil)

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		// One nibble of the hash per hex digit; >= 8 means upper case.
		nibble := hash[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(out)
}

// ParseHexAddress validates a hex address and returns its checksummed form.
// All-lowercase or all-uppercase input carries no checksum and is accepted;
// mixed-case input must match its EIP-55 checksum.
func ParseHexAddress(s string) (string, error) {
	if !isHexAddress(s) {
		return "", &FormatError{Input: s, Reason: "want 0x followed by 40 hex digits"}
	}
	want := ChecksumHex(s)
	digits := s[2:]
	if digits == strings.ToLower(digits) || digits == strings.ToUpper(digits) {
		return want, nil
	}
	if digits != want[2:] {
		return "", fmt.Errorf("%s: %w", s, ErrChecksum)
	}
	return want, nil
}
