package identity

// Verify classifies s and checks the checksum carried by its kind: the
// base58 address checksum for an account, EIP-55 for mixed-case hex.
func Verify(s string) (Kind, error) {
	switch k := Detect(s); k {
	case KindHexAddress:
		_, err := ParseHexAddress(s)
		return k, err
	case KindAccount:
		id, err := ParseID(s)
		if err != nil {
			return k, err
		}
		_, err = VerifyAddress(id.Address)
		return k, err
	default:
		return k, &FormatError{Input: s, Reason: "neither an account ID nor a hex address"}
	}
}
