// ABOUTME: Tests for version constants
// ABOUTME: Ensures the advertised device identity is well-formed and actually Sendspin's
package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeviceIdentityIsWellFormed(t *testing.T) {
	require.NotEmpty(t, Version)
	require.NotEmpty(t, Product)
	require.NotEmpty(t, Manufacturer)
}

func TestProductNamesThisClient(t *testing.T) {
	require.True(t, strings.Contains(Product, "Sendspin"), "Product %q should identify the Sendspin client, not a prior project's name", Product)
	require.Equal(t, "Sendspin", Manufacturer)
}
