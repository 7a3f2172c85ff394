package provider

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/dimchat/gsp/internal/log"
)

// document mirrors the on-disk layout. Aliased fields (name/desc, URL/home)
// are folded together in build.
type document struct {
	ID       string            `mapstructure:"ID"`
	Name     string            `mapstructure:"name"`
	Desc     string            `mapstructure:"desc"`
	URL      string            `mapstructure:"URL"`
	Home     string            `mapstructure:"home"`
	Founder  string            `mapstructure:"founder"`
	Owner    string            `mapstructure:"owner"`
	CA       map[string]any    `mapstructure:"CA"`
	Stations []stationDocument `mapstructure:"stations"`
	APIs     map[string]string `mapstructure:"APIs"`
	Contacts []string          `mapstructure:"contacts"`
}

type stationDocument struct {
	ID   string `mapstructure:"ID"`
	Name string `mapstructure:"name"`
	Desc string `mapstructure:"desc"`
	Host string `mapstructure:"host"`
	Port any    `mapstructure:"port"`
}

// Parse builds a Provider from a single JSON or YAML document.
func Parse(data []byte) (*Provider, error) {
	m, err := decodeMapping(data)
	if err != nil {
		return nil, err
	}
	return fromMapping(m)
}

// ParseMerged overlays several partial documents in order and validates
// the result once. Later top-level keys replace earlier ones, except APIs,
// which is merged entry by entry.
func ParseMerged(docs ...[]byte) (*Provider, error) {
	if len(docs) == 0 {
		return nil, &ParseError{Err: errors.New("no documents")}
	}

	merged := make(map[string]any)
	for i, data := range docs {
		m, err := decodeMapping(data)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
		mergeInto(merged, m)
	}
	return fromMapping(merged)
}

// ParseStations builds a station table from a document whose top-level
// value is an array of station objects.
func ParseStations(data []byte) ([]Station, error) {
	raw, err := decodeRaw(data)
	if err != nil {
		return nil, err
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, &ParseError{Err: fmt.Errorf("top-level value is %s, want array", describe(raw))}
	}

	var docs []stationDocument
	if err := bind(arr, &docs); err != nil {
		return nil, err
	}

	problems := newProblems()
	stations := buildStations(docs, "", problems)
	if err := problems.ErrorOrNil(); err != nil {
		return nil, &ParseError{Err: err}
	}
	return stations, nil
}

// StripComments blanks every line whose first non-blank characters are //.
// Line numbers are preserved so decoder positions still point at the source.
// Only whole-line comments are recognised; // inside values (URLs) is kept.
func StripComments(data []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(data))

	r := bufio.NewReader(bytes.NewReader(data))
	for {
		line, err := r.ReadBytes('\n')
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			if bytes.HasSuffix(line, []byte("\n")) {
				out.WriteByte('\n')
			}
		} else {
			out.Write(line)
		}
		if err != nil {
			break
		}
	}
	return out.Bytes()
}

func decodeMapping(data []byte) (map[string]any, error) {
	raw, err := decodeRaw(data)
	if err != nil {
		return nil, err
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, &ParseError{Err: fmt.Errorf("top-level value is %s, want mapping", describe(raw))}
	}
	return m, nil
}

// decodeRaw picks JSON when the document opens with { or [, YAML otherwise.
func decodeRaw(data []byte) (any, error) {
	cleaned := StripComments(data)
	trimmed := bytes.TrimSpace(cleaned)
	if len(trimmed) == 0 {
		return nil, &ParseError{Err: errors.New("empty document")}
	}

	var v any
	if trimmed[0] == '{' || trimmed[0] == '[' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, &ParseError{Err: fmt.Errorf("decoding JSON: %w", err)}
		}
		if _, err := dec.Token(); err != io.EOF {
			return nil, &ParseError{Err: errors.New("decoding JSON: unexpected data after top-level value")}
		}
	} else if err := yaml.Unmarshal(cleaned, &v); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("decoding YAML: %w", err)}
	}

	out, err := normalize(v)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return out, nil
}

// normalize gives JSON and YAML input the same shape: string-keyed maps,
// json.Number for every number and RFC 3339 strings for timestamps. Every
// value it returns can be written back as JSON.
func normalize(v any) (any, error) {
	var err error
	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			if v[k], err = normalize(e); err != nil {
				return nil, err
			}
		}
		return v, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			if out[fmt.Sprint(k)], err = normalize(e); err != nil {
				return nil, err
			}
		}
		return out, nil
	case []any:
		for i, e := range v {
			if v[i], err = normalize(e); err != nil {
				return nil, err
			}
		}
		return v, nil
	case int:
		return json.Number(strconv.Itoa(v)), nil
	case int64:
		return json.Number(strconv.FormatInt(v, 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(v, 10)), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("number %v has no JSON form", v)
		}
		// Keep the decimal point so 9394.0 stays a float, as it does in JSON.
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return json.Number(s), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	default:
		return v, nil
	}
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		if k == "APIs" {
			next, ok1 := v.(map[string]any)
			prev, ok2 := dst[k].(map[string]any)
			if ok1 && ok2 {
				for name, tmpl := range next {
					prev[name] = tmpl
				}
				continue
			}
		}
		dst[k] = v
	}
}

func bind(input any, out any) error {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     out,
		Metadata:   &md,
		TagName:    "mapstructure",
		DecodeHook: rejectNumberAsString,
		// Field names are case-sensitive: "id" is an unknown field, not ID.
		MatchName: func(mapKey, fieldName string) bool { return mapKey == fieldName },
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return &ParseError{Err: err}
	}
	if len(md.Unused) > 0 {
		log.Debug("ignoring unknown provider fields", "fields", md.Unused)
	}
	return nil
}

var numberType = reflect.TypeOf(json.Number(""))

// rejectNumberAsString stops mapstructure from accepting a number where a
// string is expected; json.Number would otherwise convert silently.
func rejectNumberAsString(from, to reflect.Type, data any) (any, error) {
	if from == numberType && to.Kind() == reflect.String && to != numberType {
		return nil, fmt.Errorf("expected a string, got number %v", data)
	}
	return data, nil
}

func fromMapping(m map[string]any) (*Provider, error) {
	var doc document
	if err := bind(m, &doc); err != nil {
		return nil, err
	}
	return build(doc)
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "mapping"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
