package region

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civiclink/civiclink/internal/store"
	"github.com/civiclink/civiclink/internal/taxonomy"
)

func TestProfiles_Bundled(t *testing.T) {
	profiles, err := Profiles()
	require.NoError(t, err)
	require.NotEmpty(t, profiles)
	assert.Equal(t, DefaultRegion, profiles[0].Name)

	kagawa := profiles[0]
	require.NotNil(t, kagawa.Stats)
	assert.Equal(t, 917613, kagawa.Stats.Population)
	assert.Equal(t, -555, kagawa.Stats.PopulationChange)
	assert.Equal(t, 413943, kagawa.Stats.Households)
	assert.Equal(t, 281640, kagawa.Stats.Tourism.Total())
	assert.Len(t, kagawa.Stats.Airport.Counts, 5)
	assert.Len(t, kagawa.Community, 6)
}

func TestParseProfiles_RejectsBadEvent(t *testing.T) {
	data := []byte(`
- name: Test
  events:
    - id: e1
      title: Wrong pair
      category: Tourism
      sub_category: School
`)
	_, err := parseProfiles(data)
	assert.Error(t, err)
}

func TestParseProfiles_RejectsDuplicateRegion(t *testing.T) {
	_, err := parseProfiles([]byte("- name: A\n- name: A\n"))
	assert.Error(t, err)
}

func TestEvents_Filter(t *testing.T) {
	profiles, err := Profiles()
	require.NoError(t, err)
	kagawa := profiles[0]

	assert.Len(t, kagawa.Events("", ""), 6)
	assert.Len(t, kagawa.Events(taxonomy.CategoryTourism, ""), 2)
	assert.Len(t, kagawa.Events(taxonomy.CategoryHealth, taxonomy.SubCaregiving), 1)
	assert.Empty(t, kagawa.Events(taxonomy.CategoryOther, ""))
}

func TestContext_WithStats(t *testing.T) {
	profiles, err := Profiles()
	require.NoError(t, err)

	ctx := profiles[0].Context()
	assert.True(t, strings.HasPrefix(ctx, "Region: Kagawa Prefecture\n"))
	assert.Contains(t, ctx, "Ritsurin Garden 48,430 (+16.0% YoY)")
	assert.Contains(t, ctx, "Haneda 107,881")
	assert.Contains(t, ctx, "Estimated population: 917,613 (-555 from the previous month), 413,943 households")
}

func TestContext_WithoutStats(t *testing.T) {
	p := Profile{Name: "Kochi", Label: "Kochi Prefecture"}
	assert.Equal(t, "Region: Kochi Prefecture\n", p.Context())
}

func TestThousands(t *testing.T) {
	tests := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		917613:   "917,613",
		-555:     "-555",
		-1234567: "-1,234,567",
	}
	for in, want := range tests {
		assert.Equal(t, want, Thousands(in), "Thousands(%d)", in)
	}
}

func TestSelector_DefaultAndPersist(t *testing.T) {
	repo := store.NewMemorySnapshotRepo()
	ctx := context.Background()

	s, err := NewSelector(ctx, repo, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultRegion, s.Current().Name)

	p, err := s.Select(ctx, "ehime")
	require.NoError(t, err)
	assert.Equal(t, "Ehime", p.Name)
	assert.Equal(t, "Region: Ehime Prefecture\n", s.Context())

	reloaded, err := NewSelector(ctx, repo, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ehime", reloaded.Current().Name)
}

func TestSelector_ProfilesIsACopy(t *testing.T) {
	s, err := NewSelector(context.Background(), nil, nil)
	require.NoError(t, err)

	got := s.Profiles()
	require.NotEmpty(t, got)
	got[0].Name = "Mutated"

	assert.Equal(t, DefaultRegion, s.Profiles()[0].Name)
	assert.Equal(t, DefaultRegion, s.Current().Name)
}

func TestSelector_UnknownRegion(t *testing.T) {
	s, err := NewSelector(context.Background(), nil, nil)
	require.NoError(t, err)

	_, err = s.Select(context.Background(), "Atlantis")
	assert.True(t, errors.Is(err, ErrUnknownRegion))
	assert.Equal(t, DefaultRegion, s.Current().Name)
}

func TestSelector_StalePersistedName(t *testing.T) {
	repo := store.NewMemorySnapshotRepo()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, store.KeySelectedRegion, "Atlantis"))

	s, err := NewSelector(ctx, repo, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultRegion, s.Current().Name)
}

func TestSelector_PersistFailureStillSelects(t *testing.T) {
	repo := store.NewMemorySnapshotRepo()
	repo.SetSaveErr(errors.New("disk full"))

	s, err := NewSelector(context.Background(), repo, nil)
	require.NoError(t, err)
	_, err = s.Select(context.Background(), "Kochi")
	require.NoError(t, err)
	assert.Equal(t, "Kochi", s.Current().Name)
}
