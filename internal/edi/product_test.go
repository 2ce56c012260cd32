package edi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProduct(t *testing.T) {
	p, warnings, err := DecodeProduct(productLine(t, nil), nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, CategoryWaterAndHeating, p.Category)
	assert.Equal(t, "123456789", p.Identifier)
	assert.Equal(t, OperationAdded, p.Operation)
	assert.Equal(t, LangFin, p.Language)
	assert.Equal(t, Date{Year: "2026", Month: "08", Day: "15"}, p.Date)
	assert.Equal(t, "COPPER PIPE 15MM", p.Name)
	assert.Equal(t, "HARD DRAWN 5M", p.Description)
	assert.Equal(t, "m", p.Unit)

	require.NotNil(t, p.DiscountGroup)
	assert.Equal(t, "DG1", *p.DiscountGroup)

	require.NotNil(t, p.UnitWeight)
	assert.InDelta(t, 1.5, *p.UnitWeight, 1e-9)
	assert.Nil(t, p.UnitVolume, "zero collapses to absent")

	require.NotNil(t, p.TypicalPackaging)
	assert.EqualValues(t, 10, *p.TypicalPackaging)

	require.NotNil(t, p.Packaging1)
	assert.InDelta(t, 150.99, *p.Packaging1, 1e-9)
	require.NotNil(t, p.Packaging1Discount)
	assert.InDelta(t, 5.0, *p.Packaging1Discount, 1e-9)
	assert.Nil(t, p.Packaging2)
	assert.Nil(t, p.Packaging2Discount)

	require.NotNil(t, p.DeliveryInWeeks)
	assert.EqualValues(t, 4, *p.DeliveryInWeeks)

	assert.Nil(t, p.StockItem)
	assert.True(t, p.Stocked())
	assert.InDelta(t, 1.0, p.UsablesInUnit, 1e-9)
}

func TestDecodeProductLanguageFilter(t *testing.T) {
	fin := LangFin
	swe := LangSwe

	p, _, err := DecodeProduct(productLine(t, nil), &fin)
	require.NoError(t, err)
	assert.Equal(t, LangFin, p.Language)

	_, _, err = DecodeProduct(productLine(t, nil), &swe)
	assert.Error(t, err, "a fin line must not pass a swe filter")

	p, _, err = DecodeProduct(productLine(t, map[int]string{4: "swe"}), &swe)
	require.NoError(t, err)
	assert.Equal(t, LangSwe, p.Language)
}

func TestDecodeProductRequiredFields(t *testing.T) {
	_, _, err := DecodeProduct(productLine(t, map[int]string{6: ""}), nil)
	assert.ErrorIs(t, err, ErrEmptyRequiredField, "empty name drops the line")

	_, _, err = DecodeProduct(productLine(t, map[int]string{2: ""}), nil)
	assert.ErrorIs(t, err, ErrEmptyRequiredField, "empty identifier drops the line")

	_, _, err = DecodeProduct(productLine(t, map[int]string{11: ""}), nil)
	assert.ErrorIs(t, err, ErrEmptyRequiredField, "empty unit drops the line")

	// Empty description only warns.
	p, warnings, err := DecodeProduct(productLine(t, map[int]string{7: ""}), nil)
	require.NoError(t, err)
	assert.Equal(t, "", p.Description)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "empty string")
}

func TestDecodeProductInvalidCodes(t *testing.T) {
	_, _, err := DecodeProduct(productLine(t, map[int]string{0: "X"}), nil)
	assert.ErrorIs(t, err, ErrInvalidRowMarker)

	_, _, err = DecodeProduct(productLine(t, map[int]string{1: "Z"}), nil)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, _, err = DecodeProduct(productLine(t, map[int]string{3: "9"}), nil)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	_, _, err = DecodeProduct(productLine(t, map[int]string{4: "xxx"}), nil)
	assert.ErrorIs(t, err, ErrInvalidLanguage)

	_, _, err = DecodeProduct(productLine(t, map[int]string{5: "2026081x"}), nil)
	assert.ErrorIs(t, err, ErrMalformedDate)
}

func TestDecodeProductStockFlag(t *testing.T) {
	p, _, err := DecodeProduct(productLine(t, map[int]string{23: "E"}), nil)
	require.NoError(t, err)
	require.NotNil(t, p.StockItem)
	assert.False(t, *p.StockItem)
	assert.False(t, p.Stocked())
}

func TestDecodeProductTruncated(t *testing.T) {
	line := productLine(t, nil)
	_, _, err := DecodeProduct(line[:100], nil)
	assert.ErrorIs(t, err, ErrTruncatedRecord)
}
