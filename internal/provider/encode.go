package provider

import (
	"bytes"
	"encoding/json"
)

// canonical is the serialized layout. Field order follows the documents
// the record is usually loaded from.
type canonical struct {
	ID       string             `json:"ID"`
	Name     string             `json:"name,omitempty"`
	URL      string             `json:"URL,omitempty"`
	Founder  string             `json:"founder,omitempty"`
	Owner    string             `json:"owner,omitempty"`
	CA       map[string]any     `json:"CA,omitempty"`
	Stations []canonicalStation `json:"stations,omitempty"`
	APIs     map[string]string  `json:"APIs,omitempty"`
	Contacts []string           `json:"contacts,omitempty"`
}

type canonicalStation struct {
	ID   string `json:"ID"`
	Name string `json:"name,omitempty"`
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// MarshalJSON writes the canonical document. Parsing the output yields a
// Provider Equal to p.
func (p *Provider) MarshalJSON() ([]byte, error) {
	c := canonical{
		ID:       p.id,
		Name:     p.name,
		URL:      p.url,
		Founder:  p.founder,
		Owner:    p.owner,
		CA:       p.ca,
		APIs:     p.apis,
		Contacts: p.contacts,
	}
	for _, s := range p.stations {
		c.Stations = append(c.Stations, canonicalStation(s))
	}
	return marshal(c)
}

// marshal keeps & < > readable in URL templates.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Encode returns the canonical document indented for humans.
func Encode(p *Provider) ([]byte, error) {
	raw, err := p.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// EncodeStations writes a standalone station table.
func EncodeStations(stations []Station) ([]byte, error) {
	out := make([]canonicalStation, len(stations))
	for i, s := range stations {
		out[i] = canonicalStation(s)
	}
	return marshal(out)
}
