package syncstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	errs   map[string]error // "table/column" → error; tidak ada entry = sukses
	probes []string
}

func (f *fakeProber) Probe(ctx context.Context, table, column string) error {
	key := table + "/" + column
	f.probes = append(f.probes, key)
	return f.errs[key]
}

var errMissing = errors.New(`relation "public.registrations" does not exist`)

func TestResolverPrefersFirstCandidate(t *testing.T) {
	p := &fakeProber{errs: map[string]error{}}
	r := NewTableResolver(p, []string{"registrations", "register"}, []string{"event_date", "date"}, "id")

	got, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Target{Table: "registrations", Column: "event_date"}, got)
}

func TestResolverFallsBackToLegacyNames(t *testing.T) {
	p := &fakeProber{errs: map[string]error{
		"registrations/id":  errMissing,
		"register/event_date": errors.New(`column register.event_date does not exist`),
	}}
	r := NewTableResolver(p, []string{"registrations", "register"}, []string{"event_date", "date"}, "id")

	got, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Target{Table: "register", Column: "date"}, got)
}

func TestResolverStopsOnPermissionError(t *testing.T) {
	p := &fakeProber{errs: map[string]error{
		"registrations/id": errors.New("permission denied for table registrations"),
	}}
	r := NewTableResolver(p, []string{"registrations", "register"}, []string{"event_date"}, "id")

	_, err := r.Resolve(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindPermission, Classify(err))
	// Tabel legacy tidak pernah dicoba: error permission bukan berarti tabel absen.
	assert.Equal(t, []string{"registrations/id"}, p.probes)
}

func TestResolverCachesResult(t *testing.T) {
	p := &fakeProber{errs: map[string]error{}}
	r := NewTableResolver(p, []string{"registrations"}, []string{"event_date"}, "id")

	_, err := r.Resolve(context.Background())
	require.NoError(t, err)
	n := len(p.probes)

	_, err = r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, n, len(p.probes))
}

func TestResolverCachesFailure(t *testing.T) {
	p := &fakeProber{errs: map[string]error{
		"registrations/id": errMissing,
		"register/id":      errMissing,
	}}
	r := NewTableResolver(p, []string{"registrations", "register"}, []string{"event_date"}, "id")

	_, err := r.Resolve(context.Background())
	require.Error(t, err)
	n := len(p.probes)

	_, err2 := r.Resolve(context.Background())
	require.Error(t, err2)
	assert.Equal(t, n, len(p.probes))
}
