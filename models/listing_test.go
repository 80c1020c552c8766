package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoverPhoto(t *testing.T) {
	l := Listing{}
	assert.Nil(t, l.CoverPhoto())

	// No cover flagged: lowest display order wins.
	l.Photos = []Photo{
		{ImageURL: "b.jpg", DisplayOrder: 2},
		{ImageURL: "a.jpg", DisplayOrder: 1},
	}
	cover := l.CoverPhoto()
	require.NotNil(t, cover)
	assert.Equal(t, "a.jpg", cover.ImageURL)

	// A flagged cover beats display order.
	l.Photos = append(l.Photos, Photo{ImageURL: "c.jpg", DisplayOrder: 9, IsCover: true})
	cover = l.CoverPhoto()
	require.NotNil(t, cover)
	assert.Equal(t, "c.jpg", cover.ImageURL)
}

func TestPriceFor(t *testing.T) {
	l := Listing{Prices: []PriceEntry{
		{Purpose: PurposeSale, Value: 350000},
		{Purpose: PurposeRental, Value: 2500},
	}}

	sale := l.PriceFor(PurposeSale)
	require.NotNil(t, sale)
	assert.Equal(t, 350000.0, sale.Value)

	rental := l.PriceFor(PurposeRental)
	require.NotNil(t, rental)
	assert.Equal(t, 2500.0, rental.Value)

	assert.Nil(t, l.PriceFor(PurposeShortStay))
}
