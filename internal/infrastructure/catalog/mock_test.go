package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGatewaySearchMatchesAllTokens(t *testing.T) {
	g := NewMockGateway()

	results, err := g.Search(context.Background(), "chicken breast", 25)

	require.NoError(t, err)
	assert.NotEmpty(t, results)
	for _, r := range results {
		assert.Contains(t, r.Name, "Chicken")
	}
}

func TestMockGatewaySearchIsCaseInsensitive(t *testing.T) {
	g := NewMockGateway()

	lower, err := g.Search(context.Background(), "grape", 25)
	require.NoError(t, err)
	upper, err := g.Search(context.Background(), "GRAPE", 25)
	require.NoError(t, err)

	assert.Equal(t, len(lower), len(upper))
}

func TestMockGatewaySearchRespectsLimit(t *testing.T) {
	g := NewMockGateway()

	results, err := g.Search(context.Background(), "raw", 2)

	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 2)
}

func TestMockGatewaySearchNoMatchReturnsEmpty(t *testing.T) {
	g := NewMockGateway()

	results, err := g.Search(context.Background(), "nonexistent food item xyz", 25)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMockGatewayIsConnectedAndReconnect(t *testing.T) {
	g := NewMockGateway()

	assert.True(t, g.IsConnected())
	assert.NoError(t, g.Reconnect(context.Background()))
}

func TestMockGatewaySeedIncludesSodiumTaggedPickles(t *testing.T) {
	g := NewMockGateway()

	results, err := g.Search(context.Background(), "pickles", 25)

	require.NoError(t, err)
	require.Len(t, results, 2)
	foundHighSodium, foundLowSodium := false, false
	for _, r := range results {
		require.NotNil(t, r.SodiumMgPer100)
		if *r.SodiumMgPer100 >= 600 {
			foundHighSodium = true
		} else {
			foundLowSodium = true
		}
	}
	assert.True(t, foundHighSodium)
	assert.True(t, foundLowSodium)
}
