package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Olocraft/propady/internal/model"
	"github.com/Olocraft/propady/internal/store"
	"github.com/Olocraft/propady/pkg/database"
	"github.com/Olocraft/propady/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetProfile returns the authenticated user's profile
func GetProfile(c echo.Context) error {
	log := logger.FromContext(c)
	userID := c.Get("user_id").(uint)

	profiles := store.NewProfileStore(database.GetDB())
	profile, err := profiles.Get(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Older accounts may predate profile creation; make one lazily
			profile = model.Profile{ID: userID}
			if createErr := profiles.Create(&profile); createErr != nil {
				log.Error("Failed to create missing profile", zap.Uint("user_id", userID), zap.Error(createErr))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load profile"})
			}
			return c.JSON(http.StatusOK, profile)
		}
		log.Error("Failed to load profile", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load profile"})
	}

	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial update to the authenticated user's profile
func UpdateProfile(c echo.Context) error {
	log := logger.FromContext(c)
	userID := c.Get("user_id").(uint)

	var req struct {
		Username  *string `json:"username"`
		FullName  *string `json:"full_name"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid profile update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	fields := map[string]interface{}{"updated_at": time.Now()}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}

	profile, err := store.NewProfileStore(database.GetDB()).Update(userID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		log.Error("Failed to update profile", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update profile"})
	}

	log.Info("Profile updated", zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, profile)
}
