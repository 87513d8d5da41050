package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Olocraft/propady/internal/chain"
	"github.com/Olocraft/propady/internal/model"
	"github.com/Olocraft/propady/internal/store"
	"github.com/Olocraft/propady/pkg/config"
	"github.com/Olocraft/propady/pkg/database"
	"github.com/Olocraft/propady/pkg/storage"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProperty(t *testing.T, ownerID uint, title string, price float64) model.Property {
	property := model.Property{Title: title, Price: price, Location: "Lagos, Nigeria", OwnerID: ownerID}
	require.NoError(t, store.NewPropertyStore(database.GetDB()).Create(&property))
	return property
}

func TestCreateProperty(t *testing.T) {
	setupTest(t)

	bedrooms := 4
	c, rec := newJSONContext(t, http.MethodPost, "/api/properties", PropertyRequest{
		Title:    "Lekki Duplex",
		Price:    130000,
		Location: "Lagos, Nigeria",
		Bedrooms: &bedrooms,
	})
	asAuthenticated(c, 7, "ada@example.com")

	require.NoError(t, CreateProperty(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Property
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, uint(7), created.OwnerID)
	require.NotNil(t, created.Bedrooms)
	assert.Equal(t, 4, *created.Bedrooms)
}

func TestCreatePropertyValidation(t *testing.T) {
	setupTest(t)

	tests := []struct {
		name string
		req  PropertyRequest
	}{
		{"missing title", PropertyRequest{Price: 1000, Location: "Lagos"}},
		{"missing location", PropertyRequest{Title: "x", Price: 1000}},
		{"zero price", PropertyRequest{Title: "x", Location: "Lagos"}},
		{"negative price", PropertyRequest{Title: "x", Price: -5, Location: "Lagos"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/api/properties", tt.req)
			asAuthenticated(c, 7, "ada@example.com")
			require.NoError(t, CreateProperty(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetProperty(t *testing.T) {
	setupTest(t)
	property := createTestProperty(t, 7, "Lekki Duplex", 130000)

	c, rec := newJSONContext(t, http.MethodGet, "/api/properties/"+property.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(property.ID)

	require.NoError(t, GetProperty(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var loaded model.Property
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loaded))
	assert.Equal(t, "Lekki Duplex", loaded.Title)
}

func TestGetPropertyNotFound(t *testing.T) {
	setupTest(t)

	c, rec := newJSONContext(t, http.MethodGet, "/api/properties/missing", nil)
	c.SetParamNames("id")
	c.SetParamValues("00000000-0000-0000-0000-000000000000")

	require.NoError(t, GetProperty(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPropertiesWithFilters(t *testing.T) {
	setupTest(t)
	createTestProperty(t, 7, "Lekki Duplex", 130000)
	createTestProperty(t, 7, "Studio Flat", 18000)

	c, rec := newJSONContext(t, http.MethodGet, "/api/properties?min_price=50000&location=lagos", nil)
	require.NoError(t, ListProperties(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var properties []model.Property
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &properties))
	require.Len(t, properties, 1)
	assert.Equal(t, "Lekki Duplex", properties[0].Title)
}

func TestListPropertiesIgnoresMalformedFilters(t *testing.T) {
	setupTest(t)
	createTestProperty(t, 7, "Lekki Duplex", 130000)

	c, rec := newJSONContext(t, http.MethodGet, "/api/properties?min_price=abc&bedrooms=many", nil)
	require.NoError(t, ListProperties(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var properties []model.Property
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &properties))
	assert.Len(t, properties, 1)
}

func TestUpdatePropertyPartial(t *testing.T) {
	setupTest(t)
	property := createTestProperty(t, 7, "Old Title", 100000)

	newTitle := "New Title"
	c, rec := newJSONContext(t, http.MethodPut, "/api/properties/"+property.ID, PropertyUpdateRequest{Title: &newTitle})
	asAuthenticated(c, 7, "ada@example.com")
	c.SetParamNames("id")
	c.SetParamValues(property.ID)

	require.NoError(t, UpdateProperty(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Property
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, 100000.0, updated.Price)
}

func TestDeleteProperty(t *testing.T) {
	setupTest(t)
	property := createTestProperty(t, 7, "Doomed", 100000)

	c, rec := newJSONContext(t, http.MethodDelete, "/api/properties/"+property.ID, nil)
	asAuthenticated(c, 7, "ada@example.com")
	c.SetParamNames("id")
	c.SetParamValues(property.ID)

	require.NoError(t, DeleteProperty(c))
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := store.NewPropertyStore(database.GetDB()).GetByID(property.ID)
	assert.Error(t, err)
}

func TestListMyProperties(t *testing.T) {
	setupTest(t)
	createTestProperty(t, 7, "Lekki Duplex", 100)
	createTestProperty(t, 8, "Someone Else's", 200)

	c, rec := newJSONContext(t, http.MethodGet, "/api/properties/mine", nil)
	asAuthenticated(c, 7, "ada@example.com")

	require.NoError(t, ListMyProperties(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var displays []model.PropertyDisplay
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &displays))
	require.Len(t, displays, 1)
	assert.Equal(t, "$100", displays[0].Price)
	assert.Equal(t, model.PlaceholderImage, displays[0].Image)
	assert.False(t, displays[0].Verified)
	assert.Equal(t, "Propady Real Estate", displays[0].Agency)
}

func newImageUploadContext(t *testing.T, propertyID string) (echo.Context, *httptest.ResponseRecorder) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("images", "house.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-png"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/properties/"+propertyID+"/images", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(propertyID)
	return c, rec
}

func TestUploadPropertyImages(t *testing.T) {
	setupTest(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	Initialize(storage.New(&config.StorageConfig{BaseURL: server.URL, APIKey: "k"}), chain.NewVerifier(0))

	property := createTestProperty(t, 7, "Lekki Duplex", 130000)
	c, rec := newImageUploadContext(t, property.ID)
	asAuthenticated(c, 7, "ada@example.com")

	require.NoError(t, UploadPropertyImages(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Property
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Len(t, updated.Images, 1)
	assert.Contains(t, updated.Images[0], "/storage/v1/object/public/properties/"+property.ID+"/")
	assert.Contains(t, updated.Images[0], "house.png")
}

func TestUploadPropertyImagesStorageFailure(t *testing.T) {
	setupTest(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"bucket unavailable"}`))
	}))
	defer server.Close()
	Initialize(storage.New(&config.StorageConfig{BaseURL: server.URL, APIKey: "k"}), chain.NewVerifier(0))

	property := createTestProperty(t, 7, "Lekki Duplex", 130000)
	c, rec := newImageUploadContext(t, property.ID)
	asAuthenticated(c, 7, "ada@example.com")

	require.NoError(t, UploadPropertyImages(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// The listing keeps its previous images on failure
	reloaded, err := store.NewPropertyStore(database.GetDB()).GetByID(property.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Images)
}
