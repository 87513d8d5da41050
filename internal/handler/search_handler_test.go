package handler

import (
	"net/http"
	"testing"

	"github.com/Olocraft/propady/internal/model"
	"github.com/Olocraft/propady/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchProperties(t *testing.T) {
	setupTest(t)
	createTestProperty(t, 7, "Lekki Duplex", 130000)
	createTestProperty(t, 7, "Studio Flat", 18000)

	c, rec := newJSONContext(t, http.MethodGet, "/api/search?q=duplex", nil)
	require.NoError(t, SearchProperties(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)

	display := data[0].(map[string]interface{})
	assert.Equal(t, "Lekki Duplex", display["title"])
	assert.Equal(t, "$130,000", display["price"])
	assert.Equal(t, model.PlaceholderImage, display["image"])
}

func TestSearchPropertiesNoMatches(t *testing.T) {
	setupTest(t)
	createTestProperty(t, 7, "Lekki Duplex", 130000)

	c, rec := newJSONContext(t, http.MethodGet, "/api/search?q=castle", nil)
	require.NoError(t, SearchProperties(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Empty(t, body["data"])
}

// A broken backing store degrades to an empty result set, never an HTTP error
func TestSearchPropertiesDegradesOnFailure(t *testing.T) {
	setupTest(t)
	require.NoError(t, database.GetDB().Migrator().DropTable(&model.Property{}))

	c, rec := newJSONContext(t, http.MethodGet, "/api/search?q=duplex", nil)
	require.NoError(t, SearchProperties(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotNil(t, body["data"])
	assert.Empty(t, body["data"])
}
