package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type memLocalityRepo struct {
	provinces    []string
	cantons      map[string][]string
	provinceHits int
	cantonHits   int
	err          error
}

func (r *memLocalityRepo) Provinces(_ context.Context) ([]string, error) {
	r.provinceHits++
	if r.err != nil {
		return nil, r.err
	}
	return r.provinces, nil
}

func (r *memLocalityRepo) Cantons(_ context.Context, provincia string) ([]string, error) {
	r.cantonHits++
	if r.err != nil {
		return nil, r.err
	}
	return r.cantons[provincia], nil
}

func TestProvincesWithoutCache(t *testing.T) {
	t.Parallel()

	repo := &memLocalityRepo{provinces: []string{"Azuay", "Guayas", "Pichincha"}}
	svc := NewLocalityService(LocalityDependencies{LocalityRepo: repo})

	provinces, err := svc.Provinces(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Azuay", "Guayas", "Pichincha"}, provinces)

	// With no cache configured every call reaches the repository.
	_, err = svc.Provinces(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, repo.provinceHits)
}

func TestCantonsUnknownProvince(t *testing.T) {
	t.Parallel()

	repo := &memLocalityRepo{cantons: map[string][]string{"Pichincha": {"Cayambe", "Quito"}}}
	svc := NewLocalityService(LocalityDependencies{LocalityRepo: repo})

	cantons, err := svc.Cantons(context.Background(), "Pichincha")
	require.NoError(t, err)
	require.Equal(t, []string{"Cayambe", "Quito"}, cantons)

	empty, err := svc.Cantons(context.Background(), "Narnia")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestLocalityRepositoryErrorsPropagate(t *testing.T) {
	t.Parallel()

	repo := &memLocalityRepo{err: errors.New("db down")}
	svc := NewLocalityService(LocalityDependencies{LocalityRepo: repo})

	_, err := svc.Provinces(context.Background())
	requireDomainCode(t, err, "INTERNAL_ERROR")

	_, err = svc.Cantons(context.Background(), "Pichincha")
	requireDomainCode(t, err, "INTERNAL_ERROR")
}
