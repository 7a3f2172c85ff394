package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/dimchat/gsp/internal/provider"
)

const (
	spID = "gsp@pZG9dRgqerAS26J6CoxBnAf4wwvMj9brpC"
	s001 = "gsp-s001@x5Zh9ixt8ECr59XLye1y5WWfaX4fcoaaSC"
	s002 = "gsp-s002@wpjUWg1oYDnkHh74tHQFPxii6q9j3ymnyW"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustParse(t *testing.T, doc string) *provider.Provider {
	t.Helper()
	p, err := provider.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return p
}

func TestOpenStoreCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestSaveAndLoadProvider(t *testing.T) {
	s := newTestStore(t)
	p := mustParse(t, fmt.Sprintf(`{
		"ID": "%s", "name": "Genesis Service Provider",
		"stations": [{"ID": "%s", "host": "127.0.0.1", "port": 9394}, {"ID": "%s"}],
		"APIs": {"upload": "http://h/{ID}/upload"},
		"contacts": ["moky@4DnqXWdTV8wuZgfqSCX9GjE2kNq7HJrUgQ"]
	}`, spID, s001, s002))

	if err := s.SaveProvider(p); err != nil {
		t.Fatalf("SaveProvider: %v", err)
	}

	got, err := s.Provider(spID)
	if err != nil {
		t.Fatalf("Provider: %v", err)
	}
	if !got.Equal(p) {
		t.Error("cached record differs from the saved one")
	}

	stations, err := s.Stations(spID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stations) != 2 || stations[0].ID != s001 || stations[1].ID != s002 {
		t.Errorf("Stations = %+v", stations)
	}
}

func TestProviderNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Provider(spID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Provider(missing) error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteProvider(spID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteProvider(missing) error = %v, want ErrNotFound", err)
	}
}

func TestProviderFallsBackToStationTable(t *testing.T) {
	s := newTestStore(t)
	p := mustParse(t, fmt.Sprintf(`{"ID": "%s"}`, spID))
	if err := s.SaveProvider(p); err != nil {
		t.Fatal(err)
	}
	table := []provider.Station{{ID: s002, Name: "dimchat-gz", Host: "134.175.87.98", Port: 9394}}
	if err := s.SaveStations(spID, table); err != nil {
		t.Fatal(err)
	}

	got, err := s.Provider(spID)
	if err != nil {
		t.Fatal(err)
	}
	stations := got.Stations()
	if len(stations) != 1 || stations[0] != table[0] {
		t.Errorf("Stations = %+v, want %+v", stations, table)
	}
}

func TestSaveProviderKeepsOrderAndUpdates(t *testing.T) {
	s := newTestStore(t)
	other := "sp2@4DnqXWdTV8wuZgfqSCX9GjE2kNq7HJrUgQ"

	for _, doc := range []string{
		fmt.Sprintf(`{"ID": "%s", "name": "v1"}`, spID),
		fmt.Sprintf(`{"ID": "%s"}`, other),
		fmt.Sprintf(`{"ID": "%s", "name": "v2"}`, spID),
	} {
		if err := s.SaveProvider(mustParse(t, doc)); err != nil {
			t.Fatal(err)
		}
	}

	records, err := s.Providers()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[0].ID != spID || records[1].ID != other {
		t.Fatalf("Providers = %+v", records)
	}
	if records[0].UpdatedAt.IsZero() {
		t.Error("UpdatedAt not recorded")
	}

	got, err := s.Provider(spID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name() != "v2" {
		t.Errorf("Name = %q, want v2", got.Name())
	}
}

func TestDeleteProvider(t *testing.T) {
	s := newTestStore(t)
	p := mustParse(t, fmt.Sprintf(`{"ID": "%s", "stations": [{"ID": "%s"}]}`, spID, s001))
	if err := s.SaveProvider(p); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteProvider(spID); err != nil {
		t.Fatalf("DeleteProvider: %v", err)
	}
	if _, err := s.Provider(spID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete, Provider error = %v", err)
	}
	stations, err := s.Stations(spID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stations) != 0 {
		t.Errorf("stations left behind: %+v", stations)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	s1, err := OpenStore(path)
	if err != nil {
		t.Fatal(err)
	}
	p := mustParse(t, fmt.Sprintf(`{"ID": "%s", "stations": [{"ID": "%s", "port": 9394}]}`, spID, s001))
	if err := s1.SaveProvider(p); err != nil {
		t.Fatal(err)
	}
	s1.Close()

	s2, err := OpenStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	got, err := s2.Provider(spID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(p) {
		t.Error("record changed across reopen")
	}
}
