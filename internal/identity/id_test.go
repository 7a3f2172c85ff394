package identity

import (
	"errors"
	"testing"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in       string
		name     string
		addr     string
		terminal string
	}{
		{"gsp@pZG9dRgqerAS26J6CoxBnAf4wwvMj9brpC", "gsp", "pZG9dRgqerAS26J6CoxBnAf4wwvMj9brpC", ""},
		{"gsp-s001@x5Zh9ixt8ECr59XLye1y5WWfaX4fcoaaSC", "gsp-s001", "x5Zh9ixt8ECr59XLye1y5WWfaX4fcoaaSC", ""},
		{"moky@4DnqXWdTV8wuZgfqSCX9GjE2kNq7HJrUgQ/iphone", "moky", "4DnqXWdTV8wuZgfqSCX9GjE2kNq7HJrUgQ", "iphone"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			id, err := ParseID(tt.in)
			if err != nil {
				t.Fatalf("ParseID(%q) error: %v", tt.in, err)
			}
			if id.Name != tt.name || id.Address != tt.addr || id.Terminal != tt.terminal {
				t.Errorf("ParseID(%q) = %+v", tt.in, id)
			}
			if id.String() != tt.in {
				t.Errorf("String() = %q, want %q", id.String(), tt.in)
			}
		})
	}
}

func TestParseIDRejects(t *testing.T) {
	for _, in := range []string{
		"",
		"no-at-sign",
		"@4DnqXWdTV8wuZgfqSCX9GjE2kNq7HJrUgQ",
		"moky@",
		"moky@0OIl",
		"moky@abc@def",
		"moky@4Dnq/",
		"mo ky@4Dnq",
	} {
		_, err := ParseID(in)
		if err == nil {
			t.Errorf("ParseID(%q) = nil error, want error", in)
			continue
		}
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("ParseID(%q) error %T, want *FormatError", in, err)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"moky@4DnqXWdTV8wuZgfqSCX9GjE2kNq7HJrUgQ", KindAccount},
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", KindHexAddress},
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", KindHexAddress},
		{"0x5aAeb605", KindUnknown},
		{"hello", KindUnknown},
	}
	for _, tt := range tests {
		if got := Detect(tt.in); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
