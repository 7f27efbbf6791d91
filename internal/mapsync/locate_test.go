package mapsync

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haaziqcode/species-map-go/internal/geolocate"
	"github.com/haaziqcode/species-map-go/internal/models"
)

var worldEnvelope = Envelope{MinLng: -180, MinLat: -90, MaxLng: 180, MaxLat: 90}

// blockingProvider never answers until released, letting tests drive the
// timeout path with a fake clock.
type blockingProvider struct {
	release chan struct{}
}

func (p *blockingProvider) CurrentPosition(context.Context, geolocate.Options) (models.LngLat, error) {
	<-p.release
	return models.LngLat{}, &geolocate.Error{Code: geolocate.CodeUnknown}
}

func locatorFixture(records []models.Species, envelope Envelope, clock clockwork.Clock) (*Locator, *SelectionController, *fakeRenderer) {
	r := newFakeRenderer()
	store := readyStore(r)
	sel := NewSelectionController(store, r)
	loc := NewLocator(r, sel, func() []models.Species { return records }, envelope, clock)
	return loc, sel, r
}

func TestSubmitManualRejectsUnparsableInput(t *testing.T) {
	loc, _, r := locatorFixture(testSpecies(), worldEnvelope, clockwork.NewFakeClock())
	loc.EnterManual()

	err := loc.SubmitManual("forty-three", "-79")
	require.Error(t, err)
	assert.Equal(t, LocateAwaitingManual, loc.State())
	assert.Contains(t, loc.Message(), "numeric")
	assert.Empty(t, r.flights, "rejected input never reaches the nearest search")
}

func TestSubmitManualRejectsOutOfEnvelope(t *testing.T) {
	loc, _, r := locatorFixture(testSpecies(), OntarioEnvelope(), clockwork.NewFakeClock())
	loc.EnterManual()

	err := loc.SubmitManual("90", "0")
	require.Error(t, err)
	assert.Equal(t, LocateAwaitingManual, loc.State())
	assert.Contains(t, loc.Message(), "serviced region")
	assert.Empty(t, r.flights)
}

func TestSubmitManualFliesToNearest(t *testing.T) {
	loc, sel, r := locatorFixture(testSpecies(), worldEnvelope, clockwork.NewFakeClock())
	loc.EnterManual()

	// Near Lake Sturgeon at (-79.4, 44.3).
	require.NoError(t, loc.SubmitManual("44.0", "-79.5"))
	assert.Equal(t, LocateFlyingTo, loc.State())
	require.NotNil(t, loc.Target())
	assert.Equal(t, "2", loc.Target().Species.ID)
	require.Len(t, r.flights, 1)

	r.flights[0]()
	assert.Equal(t, LocateIdle, loc.State())
	assert.Nil(t, loc.Target())
	require.Equal(t, SelectionDetail, sel.Current().Kind)
	assert.Equal(t, "2", sel.Current().Species[0].ID)
}

func TestSubmitManualNoEligibleRecords(t *testing.T) {
	loc, sel, r := locatorFixture(nil, worldEnvelope, clockwork.NewFakeClock())
	loc.EnterManual()

	require.NoError(t, loc.SubmitManual("44.0", "-79.5"))
	assert.Equal(t, LocateIdle, loc.State())
	assert.Equal(t, MsgNoEligible, loc.Message())
	assert.Empty(t, r.flights)
	assert.Equal(t, SelectionNone, sel.Current().Kind)
}

func TestStaleManualArrivalIgnored(t *testing.T) {
	loc, sel, r := locatorFixture(testSpecies(), worldEnvelope, clockwork.NewFakeClock())
	loc.EnterManual()

	require.NoError(t, loc.SubmitManual("44.0", "-79.5"))
	done1 := r.flights[0]

	// A second submission supersedes the in-flight fly-to.
	require.NoError(t, loc.SubmitManual("51.0", "-82.0"))
	done2 := r.flights[1]

	done1()
	assert.Equal(t, LocateFlyingTo, loc.State(), "stale arrival must not complete the newer request")
	assert.Equal(t, SelectionNone, sel.Current().Kind)

	done2()
	assert.Equal(t, LocateIdle, loc.State())
	require.Equal(t, SelectionDetail, sel.Current().Kind)
	assert.Equal(t, "3", sel.Current().Species[0].ID)
}

func TestLocateTimeout(t *testing.T) {
	clock := clockwork.NewFakeClock()
	loc, _, _ := locatorFixture(testSpecies(), worldEnvelope, clock)
	loc.SetTimeout(5 * time.Second)

	provider := &blockingProvider{release: make(chan struct{})}
	defer close(provider.release)

	loc.Locate(provider)
	assert.Equal(t, LocateLocating, loc.State())

	clock.BlockUntil(1)
	clock.Advance(5 * time.Second)

	require.Eventually(t, func() bool {
		return loc.State() == LocateAwaitingManual
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, MsgTimeout, loc.Message())
}

func TestLocatePermissionDeniedKeepsSelection(t *testing.T) {
	loc, sel, _ := locatorFixture(testSpecies(), worldEnvelope, clockwork.NewFakeClock())
	sel.SetDetail(testSpecies()[:1])

	loc.Locate(geolocate.StaticProvider{Err: &geolocate.Error{Code: geolocate.CodePermissionDenied}})

	require.Eventually(t, func() bool {
		return loc.State() == LocateAwaitingManual
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, MsgPermissionDenied, loc.Message())
	assert.Equal(t, SelectionDetail, sel.Current().Kind, "failures leave the selection untouched")
}

func TestLocateUnsupportedIsTerminal(t *testing.T) {
	loc, _, _ := locatorFixture(testSpecies(), worldEnvelope, clockwork.NewFakeClock())

	loc.Locate(geolocate.StaticProvider{Err: &geolocate.Error{Code: geolocate.CodeUnsupported}})

	require.Eventually(t, func() bool {
		return loc.Message() == MsgUnsupported
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, LocateIdle, loc.State(), "unsupported offers no manual fallback")
}

func TestLocateSuccessSelectsNearest(t *testing.T) {
	loc, sel, r := locatorFixture(testSpecies(), worldEnvelope, clockwork.NewFakeClock())
	r.autoComplete = true

	loc.Locate(geolocate.StaticProvider{Coord: models.LngLat{Lng: -79.5, Lat: 44.0}})

	require.Eventually(t, func() bool {
		return sel.Current().Kind == SelectionDetail
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "2", sel.Current().Species[0].ID)
	assert.Equal(t, LocateIdle, loc.State())
}
