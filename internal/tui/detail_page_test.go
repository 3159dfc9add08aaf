package tui

import (
	"testing"

	"github.com/oauthkit/oauthkit/internal/oauth/provider"
	"github.com/oauthkit/oauthkit/internal/tui/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailPageShowsEndpointsAndSampleURL(t *testing.T) {
	desc, err := provider.Resolve("google")
	require.NoError(t, err)

	page := NewDetailPageModel(models.ProviderItem{Descriptor: desc})
	view := page.View()

	assert.Contains(t, view, "Google")
	assert.Contains(t, view, "accounts.google.com/o/oauth2/v2/auth")
	assert.Contains(t, view, "oauth2.googleapis.com/token")
	assert.Contains(t, view, "client_id=your-client-id")
}

func TestDetailPagePKCEItem(t *testing.T) {
	desc, err := provider.Resolve("twitter")
	require.NoError(t, err)

	page := NewDetailPageModel(models.ProviderItem{Descriptor: desc, UsePKCE: true})

	assert.Contains(t, page.sampleURL, "code_challenge_method=S256")
}

func TestDetailPageOmitsMissingOperations(t *testing.T) {
	desc, err := provider.Resolve("linkedin")
	require.NoError(t, err)

	page := NewDetailPageModel(models.ProviderItem{Descriptor: desc})
	view := page.View()

	assert.NotContains(t, view, "revocation")
}

func TestProviderItemDescriptionListsOperations(t *testing.T) {
	apple, err := provider.Resolve("apple")
	require.NoError(t, err)

	item := models.ProviderItem{Descriptor: apple}
	assert.Contains(t, item.Description(), "revoke")
	assert.NotContains(t, item.Description(), "userinfo")
}

func TestListPageHoldsAllProviders(t *testing.T) {
	page := NewListPageModel()
	assert.Len(t, page.list.Items(), len(provider.Names()))
}
