package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Olocraft/propady/internal/model"
	"github.com/Olocraft/propady/internal/store"
	"github.com/Olocraft/propady/pkg/database"
	"github.com/Olocraft/propady/pkg/logger"
	"github.com/Olocraft/propady/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PropertyRequest defines the structure for property creation requests
type PropertyRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Location    string   `json:"location"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *int     `json:"bathrooms"`
	Area        *float64 `json:"area"`
	Images      []string `json:"images"`
}

// PropertyUpdateRequest carries a partial update; nil fields are left alone
type PropertyUpdateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Location    *string  `json:"location"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *int     `json:"bathrooms"`
	Area        *float64 `json:"area"`
	Images      []string `json:"images"`
}

// parsePropertyFilters reads the recognized listing filters off the query
// string. Unknown or malformed values are logged and skipped rather than
// rejected.
func parsePropertyFilters(c echo.Context) *store.PropertyFilters {
	log := logger.FromContext(c)
	filters := &store.PropertyFilters{}

	if v := c.QueryParam("min_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinPrice = &price
		} else {
			log.Warn("Invalid min_price parameter", zap.String("value", v), zap.Error(err))
		}
	}
	if v := c.QueryParam("max_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MaxPrice = &price
		} else {
			log.Warn("Invalid max_price parameter", zap.String("value", v), zap.Error(err))
		}
	}
	filters.Location = c.QueryParam("location")
	if v := c.QueryParam("bedrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters.Bedrooms = &n
		} else {
			log.Warn("Invalid bedrooms parameter", zap.String("value", v), zap.Error(err))
		}
	}
	if v := c.QueryParam("bathrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters.Bathrooms = &n
		} else {
			log.Warn("Invalid bathrooms parameter", zap.String("value", v), zap.Error(err))
		}
	}
	if v := c.QueryParam("verified"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filters.Verified = &b
		} else {
			log.Warn("Invalid verified parameter", zap.String("value", v), zap.Error(err))
		}
	}

	return filters
}

// ListProperties handles retrieving all properties with optional filtering
func ListProperties(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordPropertyOperation("list")

	properties, err := store.NewPropertyStore(database.GetDB()).List(parsePropertyFilters(c))
	if err != nil {
		log.Error("Failed to list properties", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve properties"})
	}

	log.Info("Properties retrieved successfully", zap.Int("count", len(properties)))
	return c.JSON(http.StatusOK, properties)
}

// GetProperty handles retrieving a single property by ID
func GetProperty(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	prometheus.RecordPropertyOperation("get")

	property, err := store.NewPropertyStore(database.GetDB()).GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("Property not found", zap.String("property_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property not found"})
		}
		log.Error("Failed to load property", zap.String("property_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve property"})
	}

	return c.JSON(http.StatusOK, property)
}

// CreateProperty handles creating a new listing owned by the caller
func CreateProperty(c echo.Context) error {
	log := logger.FromContext(c)
	userID := c.Get("user_id").(uint)
	prometheus.RecordPropertyOperation("create")

	var req PropertyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.Title == "" || req.Location == "" || req.Price <= 0 {
		log.Warn("Incomplete property data",
			zap.String("title", req.Title),
			zap.Float64("price", req.Price),
			zap.String("location", req.Location))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, location and a positive price are required"})
	}

	property := model.Property{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Area:        req.Area,
		Images:      req.Images,
		OwnerID:     userID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := store.NewPropertyStore(database.GetDB()).Create(&property); err != nil {
		log.Error("Failed to create property",
			zap.String("title", req.Title),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create property"})
	}

	log.Info("Property created successfully",
		zap.String("property_id", property.ID),
		zap.String("title", property.Title),
		zap.Uint("owner_id", userID))
	return c.JSON(http.StatusCreated, property)
}

// UpdateProperty handles partial updates of an existing property
func UpdateProperty(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	prometheus.RecordPropertyOperation("update")

	var req PropertyUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("property_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	fields := map[string]interface{}{"updated_at": time.Now()}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Bedrooms != nil {
		fields["bedrooms"] = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		fields["bathrooms"] = *req.Bathrooms
	}
	if req.Area != nil {
		fields["area"] = *req.Area
	}
	if req.Images != nil {
		fields["images"] = req.Images
	}

	property, err := store.NewPropertyStore(database.GetDB()).Update(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("Property not found for update", zap.String("property_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property not found"})
		}
		log.Error("Failed to update property", zap.String("property_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update property"})
	}

	log.Info("Property updated successfully", zap.String("property_id", id))
	return c.JSON(http.StatusOK, property)
}

// DeleteProperty handles deleting a property
func DeleteProperty(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	prometheus.RecordPropertyOperation("delete")

	if err := store.NewPropertyStore(database.GetDB()).Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("Property not found for deletion", zap.String("property_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property not found"})
		}
		log.Error("Failed to delete property", zap.String("property_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete property"})
	}

	log.Info("Property deleted successfully", zap.String("property_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Property deleted successfully"})
}

// ListMyProperties returns the caller's listings in display form
func ListMyProperties(c echo.Context) error {
	log := logger.FromContext(c)
	userID := c.Get("user_id").(uint)
	prometheus.RecordPropertyOperation("list_mine")

	properties, err := store.NewPropertyStore(database.GetDB()).ListByOwner(userID)
	if err != nil {
		log.Error("Failed to list user properties", zap.Uint("owner_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve properties"})
	}

	displays := make([]model.PropertyDisplay, 0, len(properties))
	for _, p := range properties {
		displays = append(displays, model.MapPropertyToDisplay(p))
	}

	return c.JSON(http.StatusOK, displays)
}

// UploadPropertyImages stores uploaded images for a listing and appends their
// public URLs to the images column.
func UploadPropertyImages(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	prometheus.RecordPropertyOperation("upload_images")

	properties := store.NewPropertyStore(database.GetDB())
	property, err := properties.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property not found"})
		}
		log.Error("Failed to load property", zap.String("property_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve property"})
	}

	form, err := c.MultipartForm()
	if err != nil {
		log.Error("Invalid multipart form", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid multipart form"})
	}

	files := form.File["images"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no images provided"})
	}

	urls := property.Images
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			log.Error("Failed to open uploaded file", zap.String("file", file.Filename), zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable upload"})
		}

		// Timestamp prefix keeps paths collision-free within the listing
		path := fmt.Sprintf("%s/%d-%s", property.ID, time.Now().UnixMilli(), file.Filename)
		err = storageClient.Upload(c.Request().Context(), propertiesBucket, path, file.Header.Get("Content-Type"), src)
		src.Close()
		if err != nil {
			prometheus.UploadFailuresCounter.Inc()
			log.Error("Failed to upload image",
				zap.String("property_id", property.ID),
				zap.String("file", file.Filename),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload image"})
		}

		urls = append(urls, storageClient.PublicURL(propertiesBucket, path))
	}

	updated, err := properties.Update(property.ID, map[string]interface{}{
		"images":     urls,
		"updated_at": time.Now(),
	})
	if err != nil {
		log.Error("Failed to save image URLs", zap.String("property_id", property.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update property"})
	}

	log.Info("Property images uploaded",
		zap.String("property_id", property.ID),
		zap.Int("count", len(files)))
	return c.JSON(http.StatusOK, updated)
}
