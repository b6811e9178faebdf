package helpers_test

import (
	"testing"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "home-audio", helpers.GenerateSlug("Home Audio"))
	assert.Equal(t, "cafe-deals", helpers.GenerateSlug("Café Deals!"))

	// Same name, same slug.
	assert.Equal(t, helpers.GenerateSlug("Phones & Tablets"), helpers.GenerateSlug("Phones & Tablets"))
}

func TestGenerateCategorySlug(t *testing.T) {
	assert.Equal(t, "electronics-phones", helpers.GenerateCategorySlug("Phones", "electronics"))
	assert.Equal(t, "electronics-phones-android", helpers.GenerateCategorySlug("Android", "electronics-phones"))

	// A missing parent leaves the leading hyphen in place.
	assert.Equal(t, "-phones", helpers.GenerateCategorySlug("Phones", ""))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash := helpers.HashPassword("s3cret-password")
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, helpers.PasswordCompare(hash, []byte("s3cret-password")))
	assert.False(t, helpers.PasswordCompare(hash, []byte("wrong-password")))
}
