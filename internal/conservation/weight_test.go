package conservation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haaziqcode/species-map-go/internal/models"
)

func TestWeightMonotonicInSeverity(t *testing.T) {
	assert.Greater(t, Weight(models.StatusEndangered), Weight(models.StatusThreatened))
	assert.Greater(t, Weight(models.StatusThreatened), Weight(models.StatusSpecialConcern))
	assert.Greater(t, Weight(models.StatusSpecialConcern), Weight(models.StatusExtirpated))
	assert.Greater(t, Weight(models.StatusExtirpated), Weight(models.StatusExtinct))
}

func TestUnknownStatusMiddleDefault(t *testing.T) {
	w := Weight(models.ConservationStatus("mystery"))
	assert.Equal(t, defaultWeight, w)
	assert.NotZero(t, w, "unclassified records must still contribute to density")
	assert.Less(t, w, Weight(models.StatusEndangered))
	assert.Greater(t, w, Weight(models.StatusExtinct))
}

func TestNormalizedWeightRange(t *testing.T) {
	for _, status := range []models.ConservationStatus{
		models.StatusExtinct, models.StatusExtirpated, models.StatusEndangered,
		models.StatusThreatened, models.StatusSpecialConcern, "unknown",
	} {
		w := NormalizedWeight(status)
		assert.Greater(t, w, 0.0, "status %s", status)
		assert.LessOrEqual(t, w, 1.0, "status %s", status)
	}
}

func TestRampsCoverFullRange(t *testing.T) {
	for _, ramp := range [][]RampStop{HeatColorRamp(), CircleColorRamp()} {
		assert.Equal(t, 0.0, ramp[0].Position)
		assert.Equal(t, 1.0, ramp[len(ramp)-1].Position)
		for i := 1; i < len(ramp); i++ {
			assert.Greater(t, ramp[i].Position, ramp[i-1].Position)
		}
	}
}
