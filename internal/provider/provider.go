package provider

import (
	"maps"
	"net"
	"reflect"
	"slices"
	"sort"
	"strconv"
)

// Provider is a validated service provider record. The zero value is not
// useful; build one with Parse or ParseMerged.
type Provider struct {
	id      string
	name    string
	url     string
	founder string
	owner   string
	ca      map[string]any

	stations     []Station
	stationIndex map[string]int

	apis     map[string]string
	contacts []string
}

// Station is one network entry point of a provider. Host and Port are
// optional; a station with neither is a placeholder whose address is
// resolved by other means.
type Station struct {
	ID   string
	Name string
	Host string
	Port int // 0 when absent
}

// Placeholder reports whether the station carries no address at all.
func (s Station) Placeholder() bool {
	return s.Host == "" && s.Port == 0
}

// Address returns host:port, or "" unless both are set.
func (s Station) Address() string {
	if s.Host == "" || s.Port == 0 {
		return ""
	}
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

func (p *Provider) ID() string      { return p.id }
func (p *Provider) Name() string    { return p.name }
func (p *Provider) URL() string     { return p.url }
func (p *Provider) Founder() string { return p.founder }
func (p *Provider) Owner() string   { return p.owner }

// CA returns a copy of the opaque certificate-authority blob, or nil.
func (p *Provider) CA() map[string]any {
	if p.ca == nil {
		return nil
	}
	return cloneValue(p.ca).(map[string]any)
}

// Stations returns the stations in preference order.
func (p *Provider) Stations() []Station {
	return slices.Clone(p.stations)
}

// Station looks a station up by ID.
func (p *Provider) Station(id string) (Station, bool) {
	i, ok := p.stationIndex[id]
	if !ok {
		return Station{}, false
	}
	return p.stations[i], true
}

// Contacts returns the contact identifiers in declaration order, unvalidated.
func (p *Provider) Contacts() []string {
	return slices.Clone(p.contacts)
}

// API returns the raw template registered under name.
func (p *Provider) API(name string) (string, bool) {
	tmpl, ok := p.apis[name]
	return tmpl, ok
}

// APINames returns the defined API names, sorted.
func (p *Provider) APINames() []string {
	names := make([]string, 0, len(p.apis))
	for name := range p.apis {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether p and o describe the same record.
func (p *Provider) Equal(o *Provider) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.id == o.id &&
		p.name == o.name &&
		p.url == o.url &&
		p.founder == o.founder &&
		p.owner == o.owner &&
		reflect.DeepEqual(p.ca, o.ca) &&
		slices.Equal(p.stations, o.stations) &&
		maps.Equal(p.apis, o.apis) &&
		slices.Equal(p.contacts, o.contacts)
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
