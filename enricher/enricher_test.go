package enricher

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilby125/por-search/config"
	"github.com/gilby125/por-search/por"
)

type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = f.values[i].(string)
		default:
			return errors.New("fakeRow: unsupported scan target")
		}
	}
	return nil
}

type fakeQuerier struct {
	row fakeRow
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return f.row
}

func TestCityDetailsFound(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{values: []any{"SFO", "San Francisco", "US", "America/Los_Angeles"}}}
	e := New(q)

	details, err := e.CityDetails(context.Background(), por.Key{IATACode: "SFO", ICAOCode: "KSFO"})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "San Francisco", details[0].CityName)
	assert.Equal(t, "America/Los_Angeles", details[0].TimeZone)
}

func TestCityDetailsNoRows(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}
	e := New(q)

	details, err := e.CityDetails(context.Background(), por.Key{IATACode: "ZZZ"})
	require.NoError(t, err)
	assert.Nil(t, details)
}

func TestCityDetailsBackendError(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{err: errors.New("connection reset")}}
	e := New(q)

	_, err := e.CityDetails(context.Background(), por.Key{IATACode: "ZZZ"})
	assert.Error(t, err)
}

func TestConnString(t *testing.T) {
	cfg := config.PostgresConfig{Host: "db", Port: "5432", User: "por", Password: "secret", DBName: "por", SSLMode: "disable"}
	got := ConnString(cfg)
	assert.Contains(t, got, "host=db")
	assert.Contains(t, got, "dbname=por")
}
