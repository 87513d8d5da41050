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

// ListCrowdfundingProjects returns all crowdfunding projects, newest first
func ListCrowdfundingProjects(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCrowdfundingOperation("list")

	projects, err := store.NewCrowdfundingStore(database.GetDB()).ListProjects()
	if err != nil {
		log.Error("Failed to list crowdfunding projects", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve projects"})
	}

	return c.JSON(http.StatusOK, projects)
}

// GetCrowdfundingProject returns a single crowdfunding project by ID
func GetCrowdfundingProject(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	prometheus.RecordCrowdfundingOperation("get")

	project, err := store.NewCrowdfundingStore(database.GetDB()).GetProject(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
		}
		log.Error("Failed to load crowdfunding project", zap.String("project_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve project"})
	}

	return c.JSON(http.StatusOK, project)
}

// CreateCrowdfundingProject creates a project from a multipart form. The image
// upload is best effort: a storage failure is logged and the project keeps the
// placeholder image rather than failing the whole submission.
func CreateCrowdfundingProject(c echo.Context) error {
	log := logger.FromContext(c)
	userID := c.Get("user_id").(uint)
	prometheus.RecordCrowdfundingOperation("create")

	title := c.FormValue("title")
	description := c.FormValue("description")
	location := c.FormValue("location")
	propertyType := c.FormValue("property_type")
	goalParam := c.FormValue("goal_amount")
	endDateParam := c.FormValue("end_date")

	if title == "" || description == "" || location == "" || propertyType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, description, location and property_type are required"})
	}

	goalAmount, err := strconv.ParseFloat(goalParam, 64)
	if err != nil || goalAmount <= 0 {
		log.Warn("Invalid goal amount", zap.String("value", goalParam))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "goal_amount must be a positive number"})
	}

	endDate, err := time.Parse(time.RFC3339, endDateParam)
	if err != nil {
		// The submission form sends a bare date for the deadline
		endDate, err = time.Parse("2006-01-02", endDateParam)
	}
	if err != nil {
		log.Warn("Invalid end date", zap.String("value", endDateParam))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be an RFC 3339 timestamp or YYYY-MM-DD date"})
	}

	imageURL := model.PlaceholderImage
	if file, err := c.FormFile("image"); err == nil {
		if src, err := file.Open(); err == nil {
			path := fmt.Sprintf("projects/%d-%s", time.Now().UnixMilli(), file.Filename)
			uploadErr := storageClient.Upload(c.Request().Context(), crowdfundingBucket, path, file.Header.Get("Content-Type"), src)
			src.Close()
			if uploadErr != nil {
				prometheus.UploadFailuresCounter.Inc()
				log.Error("Failed to upload project image, keeping placeholder",
					zap.String("file", file.Filename),
					zap.Error(uploadErr))
			} else {
				imageURL = storageClient.PublicURL(crowdfundingBucket, path)
			}
		} else {
			log.Error("Failed to open uploaded image", zap.String("file", file.Filename), zap.Error(err))
		}
	}

	project := model.CrowdfundingProject{
		Title:        title,
		Description:  description,
		GoalAmount:   goalAmount,
		ImageURL:     imageURL,
		EndDate:      endDate,
		CreatorID:    userID,
		PropertyType: propertyType,
		Location:     location,
	}

	if err := store.NewCrowdfundingStore(database.GetDB()).CreateProject(&project); err != nil {
		log.Error("Failed to create crowdfunding project", zap.String("title", title), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create project"})
	}

	log.Info("Crowdfunding project created",
		zap.String("project_id", project.ID),
		zap.String("title", project.Title),
		zap.Uint("creator_id", userID))
	return c.JSON(http.StatusCreated, project)
}

// InvestInCrowdfundingProject records a contribution and bumps the project's
// running total.
func InvestInCrowdfundingProject(c echo.Context) error {
	log := logger.FromContext(c)
	userID := c.Get("user_id").(uint)
	projectID := c.Param("id")
	prometheus.RecordCrowdfundingOperation("invest")

	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid investment request", zap.String("project_id", projectID), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be a positive number"})
	}

	investment, err := store.NewCrowdfundingStore(database.GetDB()).RecordInvestment(projectID, userID, req.Amount)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
		}
		log.Error("Failed to record crowdfunding investment",
			zap.String("project_id", projectID),
			zap.Uint("investor_id", userID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to record investment"})
	}

	log.Info("Crowdfunding investment recorded",
		zap.String("investment_id", investment.ID),
		zap.String("project_id", projectID),
		zap.Float64("amount", req.Amount))
	return c.JSON(http.StatusCreated, echo.Map{
		"success":    true,
		"investment": investment,
	})
}
