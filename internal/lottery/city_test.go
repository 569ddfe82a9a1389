package lottery

import (
	"context"
	"testing"

	"github.com/cashcashapp/cashcash-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCityDerivesSlugAndSecret(t *testing.T) {
	svc, _, _ := newTestService(t)

	city, err := svc.CreateCity(context.Background(), "Le Havre", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "le-havre", city.Slug)
	assert.NotEmpty(t, city.ID)
	assert.NotEmpty(t, city.QRCodeSecret)
	assert.True(t, city.IsActive)
	assert.Zero(t, city.PotAmount)

	// Two cities never share a secret
	other, err := svc.CreateCity(context.Background(), "Bordeaux", "", nil)
	require.NoError(t, err)
	assert.NotEqual(t, city.QRCodeSecret, other.QRCodeSecret)
}

func TestListCitiesAnnotations(t *testing.T) {
	svc, db, _ := newTestService(t)
	user := createUser(t, db, "viewer@example.com")
	joinedCity := createCity(t, db, "Paris", "secret-a")
	hintedCity := createCity(t, db, "Lyon", "secret-b")
	hidden := createCity(t, db, "Closed", "secret-c")
	require.NoError(t, db.Model(&domain.City{}).Where("id = ?", hidden.ID).Update("is_active", false).Error)
	require.NoError(t, svc.PublishHint(context.Background(), hintedCity.ID, "https://cdn.example.com/clue.jpg"))

	fund(t, svc, user.ID, 5)
	_, err := svc.Join(context.Background(), user.ID, joinedCity.ID)
	require.NoError(t, err)

	views, err := svc.ListCities(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, views, 2) // inactive city is hidden

	byName := map[string]CityView{}
	for _, v := range views {
		byName[v.Name] = v
	}
	assert.True(t, byName["Paris"].UserHasParticipated)
	assert.False(t, byName["Paris"].HintAvailable)
	assert.False(t, byName["Lyon"].UserHasParticipated)
	assert.True(t, byName["Lyon"].HintAvailable)
}

func TestPublishedHintRequiresImage(t *testing.T) {
	svc, db, _ := newTestService(t)
	user := createUser(t, db, "hints@example.com")
	city := createCity(t, db, "Brest", "secret-brest")

	// Published flag without an image does not surface a hint
	require.NoError(t, db.Model(&domain.City{}).Where("id = ?", city.ID).Update("hint_published", true).Error)
	views, err := svc.ListCities(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].HintAvailable)
}

func TestDeactivateCity(t *testing.T) {
	svc, db, _ := newTestService(t)
	user := createUser(t, db, "gone@example.com")
	city := createCity(t, db, "Rouen", "secret-rouen")

	require.NoError(t, svc.DeactivateCity(context.Background(), city.ID))
	views, err := svc.ListCities(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, views)

	// History survives deactivation
	all, err := svc.AllCities(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.ErrorIs(t, svc.DeactivateCity(context.Background(), "missing"), ErrCityNotFound)
}

func TestUnpublishHint(t *testing.T) {
	svc, db, _ := newTestService(t)
	city := createCity(t, db, "Caen", "secret-caen")
	require.NoError(t, svc.PublishHint(context.Background(), city.ID, "https://cdn.example.com/clue.jpg"))
	require.NoError(t, svc.UnpublishHint(context.Background(), city.ID))

	got := reloadCity(t, db, city.ID)
	assert.False(t, got.HintPublished)
	assert.NotNil(t, got.HintImage) // the image stays attached, just hidden
}

func TestGlobalStats(t *testing.T) {
	svc, db, _ := newTestService(t)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	paris := createCity(t, db, "Paris", "secret-paris")
	lyon := createCity(t, db, "Lyon", "secret-lyon")
	fund(t, svc, alice.ID, 5)
	fund(t, svc, bob.ID, 5)

	for _, cityID := range []string{paris.ID, lyon.ID} {
		_, err := svc.Join(context.Background(), alice.ID, cityID)
		require.NoError(t, err)
		_, err = svc.Join(context.Background(), bob.ID, cityID)
		require.NoError(t, err)
	}
	_, _, err := svc.Redeem(context.Background(), alice.ID, paris.ID, "secret-paris")
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 2, stats.TotalPot, 1e-9) // lyon still holds two stakes
	assert.EqualValues(t, 1, stats.TotalWinners)
	assert.InDelta(t, 2, stats.TotalDistributed, 1e-9)
	assert.EqualValues(t, 2, stats.ActiveCities)
}
