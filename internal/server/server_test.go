package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/loadzero/geoloc/format/geoloc"
	"github.com/loadzero/geoloc/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func buildTestStore(t *testing.T) *geoloc.Store {
	t.Helper()
	dir := t.TempDir()

	blocksCSV := filepath.Join(dir, "blocks.csv")
	locationCSV := filepath.Join(dir, "location.csv")
	asnumCSV := filepath.Join(dir, "asnum.csv")

	require.NoError(t, os.WriteFile(blocksCSV, []byte(
		"copyright\nstart_ip,end_ip,loc\n134744064,134744319,1\n"), 0o644))
	require.NoError(t, os.WriteFile(locationCSV, []byte(
		"copyright\nid,country,region,city,postal,lat,lon,metro,area\n"+
			`1,"US","CA","Mountain View",94043,37.4043,-122.0748,807,0`+"\n"), 0o644))
	require.NoError(t, os.WriteFile(asnumCSV, []byte(""), 0o644))

	outPath := filepath.Join(dir, "geodata.bin")
	log := logging.New(logrus.ErrorLevel)
	_, err := geoloc.Build(log, geoloc.BuildSources{
		BlocksCSV: blocksCSV, LocationCSV: locationCSV, ASNumCSV: asnumCSV,
	}, outPath, nil)
	require.NoError(t, err)

	store, err := geoloc.Open(log, outPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLookupEndpoint(t *testing.T) {
	store := buildTestStore(t)
	log := logging.New(logrus.ErrorLevel)
	engine := New(log, store)

	req := httptest.NewRequest(http.MethodGet, "/lookup/8.8.8.8", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got jsonResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "8.8.8.8", got.IP)
	require.Equal(t, "US", got.Country)
	require.Equal(t, "Mountain View", got.City)
}

func TestLookupEndpointBadIP(t *testing.T) {
	store := buildTestStore(t)
	log := logging.New(logrus.ErrorLevel)
	engine := New(log, store)

	req := httptest.NewRequest(http.MethodGet, "/lookup/not-an-ip", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	store := buildTestStore(t)
	log := logging.New(logrus.ErrorLevel)
	engine := New(log, store)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
