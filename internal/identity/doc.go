// Package identity parses and classifies the identifier strings that name
// providers, stations, founders, owners and contacts.
//
// Two unrelated formats share the same fields in provider records:
// account identifiers of the form name@address[/terminal], where address is
// a base58 string, and raw hexadecimal addresses (0x followed by 40 hex
// digits). Detect tells them apart by shape. VerifyAddress and
// ParseHexAddress perform the stronger checksum checks.
package identity
