package edi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePrice(t *testing.T) {
	p, warnings, err := DecodePrice(priceLine(t, nil))
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, CategoryElectricity, p.Category)
	assert.Equal(t, "987654321", p.Identifier)
	assert.Equal(t, "A1", p.PriceGroup)
	assert.InDelta(t, 150.99, p.Price, 1e-9)
	assert.Equal(t, Date{Year: "2026", Month: "08", Day: "01"}, p.Date)
	assert.Equal(t, "DG1", p.DiscountGroup)
	assert.Equal(t, "kpl", p.Unit)
	assert.EqualValues(t, 1, p.UnitsIncluded)

	assert.Nil(t, p.Packaging1)
	assert.Nil(t, p.UsageUnit)
	assert.InDelta(t, 1.0, p.UsablesInUnit, 1e-9)

	require.NotNil(t, p.StockItem)
	assert.False(t, p.Stocked())

	assert.Nil(t, p.DeliveryInWeeks, `"00" counts as empty`)
}

func TestDecodePriceDeliveryLeadTime(t *testing.T) {
	p, _, err := DecodePrice(priceLine(t, map[int]string{18: "06"}))
	require.NoError(t, err)
	require.NotNil(t, p.DeliveryInWeeks)
	assert.EqualValues(t, 6, *p.DeliveryInWeeks)
}

func TestDecodePriceTruncatedTail(t *testing.T) {
	// Some source files drop the trailing delivery column. The line still
	// decodes, with a warning.
	line := priceLine(t, nil)
	p, warnings, err := DecodePrice(line[:PriceLineLen-2])
	require.NoError(t, err)
	assert.Nil(t, p.DeliveryInWeeks)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "delivery lead time")
}

func TestDecodePriceErrors(t *testing.T) {
	_, _, err := DecodePrice(priceLine(t, map[int]string{3: ""}))
	assert.ErrorIs(t, err, ErrEmptyRequiredField, "empty price group")

	_, _, err = DecodePrice(priceLine(t, map[int]string{4: "00001509x"}))
	assert.ErrorIs(t, err, ErrMalformedNumber)

	line := priceLine(t, nil)
	_, _, err = DecodePrice(line[:40])
	assert.ErrorIs(t, err, ErrTruncatedRecord)
}
