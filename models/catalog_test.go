package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePrefersPriceOverPrize(t *testing.T) {
	price := Number(100)
	prize := Number(80)
	raw := RawProduct{ID: "p1", Name: "Mug", Price: &price, Prize: &prize}

	item := raw.Normalize()
	assert.Equal(t, 100.0, item.Price)
}

func TestNormalizeFallsBackToPrize(t *testing.T) {
	prize := Number(80)
	raw := RawProduct{ID: "p1", Prize: &prize}

	assert.Equal(t, 80.0, raw.Normalize().Price)
}

func TestNormalizeDefaultsMissingPriceToZero(t *testing.T) {
	raw := RawProduct{ID: "p1", Name: "Mug"}

	assert.Equal(t, 0.0, raw.Normalize().Price)
}

func TestNormalizeClampsNegativePrice(t *testing.T) {
	price := Number(-5)
	raw := RawProduct{ID: "p1", Price: &price}

	assert.Equal(t, 0.0, raw.Normalize().Price)
}

func TestNormalizePrefersImageOverFeatureImage(t *testing.T) {
	raw := RawProduct{ID: "p1", Image: "a.jpg", FeatureImage: "b.jpg"}
	assert.Equal(t, "a.jpg", raw.Normalize().Image)

	raw = RawProduct{ID: "p1", FeatureImage: "b.jpg"}
	assert.Equal(t, "b.jpg", raw.Normalize().Image)
}

func TestRawProductDecodesLegacyFields(t *testing.T) {
	// Numeric id, string prize: the shapes the legacy backend actually sends.
	body := `{"id": 42, "name": "Scarf", "prize": "499.00", "featureImage": "s.jpg"}`

	var raw RawProduct
	require.NoError(t, json.Unmarshal([]byte(body), &raw))

	item := raw.Normalize()
	assert.Equal(t, ProductID("42"), item.ID)
	assert.Equal(t, 499.0, item.Price)
	assert.Equal(t, "s.jpg", item.Image)
}

func TestNumberToleratesGarbage(t *testing.T) {
	var n Number
	require.NoError(t, json.Unmarshal([]byte(`"not-a-price"`), &n))
	assert.Equal(t, Number(0), n)

	require.NoError(t, json.Unmarshal([]byte(`null`), &n))
	assert.Equal(t, Number(0), n)
}
