package provider

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/dimchat/gsp/internal/identity"
)

const (
	minPort = 1
	maxPort = 65535
)

// build validates doc and folds it into a Provider. Every problem is
// collected before returning so one run reports them all.
func build(doc document) (*Provider, error) {
	problems := newProblems()

	switch {
	case doc.ID == "":
		problems = multierror.Append(problems, &ValidationError{Field: "ID", Reason: "required"})
	default:
		if reason := idProblem(doc.ID); reason != "" {
			problems = multierror.Append(problems, &ValidationError{Field: "ID", Value: doc.ID, Reason: reason})
		}
	}

	stations := buildStations(doc.Stations, "stations", problems)
	if err := problems.ErrorOrNil(); err != nil {
		return nil, &ParseError{Err: err}
	}

	p := &Provider{
		id:       doc.ID,
		name:     firstNonEmpty(doc.Name, doc.Desc),
		url:      firstNonEmpty(doc.URL, doc.Home),
		founder:  doc.Founder,
		owner:    doc.Owner,
		stations: stations,
	}
	if len(doc.CA) > 0 {
		p.ca = doc.CA
	}
	if len(doc.APIs) > 0 {
		p.apis = doc.APIs
	}
	if len(doc.Contacts) > 0 {
		p.contacts = doc.Contacts
	}
	p.stationIndex = make(map[string]int, len(stations))
	for i, s := range stations {
		p.stationIndex[s.ID] = i
	}
	return p, nil
}

// buildStations appends station problems to problems. prefix names the
// enclosing field for error messages; empty for a standalone table.
func buildStations(docs []stationDocument, prefix string, problems *multierror.Error) []Station {
	if len(docs) == 0 {
		return nil
	}

	stations := make([]Station, 0, len(docs))
	seen := make(map[string]int, len(docs))
	for i, sd := range docs {
		field := fmt.Sprintf("%s[%d]", prefix, i)

		switch {
		case sd.ID == "":
			multierror.Append(problems, &ValidationError{Field: field + ".ID", Reason: "required"})
		default:
			if reason := idProblem(sd.ID); reason != "" {
				multierror.Append(problems, &ValidationError{Field: field + ".ID", Value: sd.ID, Reason: reason})
			} else if first, dup := seen[sd.ID]; dup {
				multierror.Append(problems, &ValidationError{
					Field:  field + ".ID",
					Value:  sd.ID,
					Reason: fmt.Sprintf("duplicate station ID (first at %s[%d])", prefix, first),
				})
			} else {
				seen[sd.ID] = i
			}
		}

		port, err := portValue(sd.Port)
		if err != nil {
			multierror.Append(problems, &ValidationError{Field: field + ".port", Value: fmt.Sprint(sd.Port), Reason: err.Error()})
		}

		stations = append(stations, Station{
			ID:   sd.ID,
			Name: firstNonEmpty(sd.Name, sd.Desc),
			Host: sd.Host,
			Port: port,
		})
	}
	return stations
}

// portValue returns 0 for an absent port.
func portValue(v any) (int, error) {
	if v == nil {
		return 0, nil
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, errors.New("must be an integer")
	}
	port, err := n.Int64()
	if err != nil {
		return 0, errors.New("must be an integer")
	}
	if port < minPort || port > maxPort {
		return 0, fmt.Errorf("out of range [%d,%d]", minPort, maxPort)
	}
	return int(port), nil
}

func idProblem(id string) string {
	_, err := identity.ParseID(id)
	if err == nil {
		return ""
	}
	var fe *identity.FormatError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return err.Error()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
