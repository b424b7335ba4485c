package player

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sitca-league/sitca-backend/config"
	"github.com/sitca-league/sitca-backend/pkg/responses"
	"github.com/sitca-league/sitca-backend/pkg/uploads"
	"github.com/sitca-league/sitca-backend/pkg/validator"
)

const dobLayout = "2006-01-02"

type PlayerController struct {
	repo   PlayerRepository
	store  *uploads.Store
	config *config.Config
}

func NewPlayerController(repo PlayerRepository, store *uploads.Store, cfg *config.Config) *PlayerController {
	return &PlayerController{
		repo:   repo,
		store:  store,
		config: cfg,
	}
}

// @Summary      Public player registration
// @Description  Submit a registration form with a player photo and an Aadhaar photo. No login needed; the application starts out PENDING.
// @Tags         Player
// @Accept       multipart/form-data
// @Produce      json
// @Param        fullName      formData  string  true   "Full name"
// @Param        dob           formData  string  true   "Date of birth (YYYY-MM-DD)"
// @Param        primaryPhone  formData  string  true   "Primary phone"
// @Param        bloodGroup    formData  string  true   "Blood group"
// @Param        primaryRole   formData  string  true   "Batsman, Bowler or All-Rounder"
// @Param        shirtSize     formData  string  true   "Shirt size"
// @Param        pantSize      formData  string  true   "Pant size"
// @Param        instagram     formData  string  true   "Instagram handle"
// @Param        photo         formData  file    true   "Player photo (image, max 5 MB)"
// @Param        aadhaarPhoto  formData  file    true   "Aadhaar photo (image or PDF, max 5 MB)"
// @Success      201   {object} responses.SuccessResponse "Registration accepted, player is PENDING"
// @Failure      400   {object} responses.ErrorResponse "Missing field, bad date, unsupported file type or file too large"
// @Failure      500   {object} responses.ErrorResponse "Internal server error"
// @Router       /player/register-public [post]
func (pc *PlayerController) RegisterPublic(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		responses.BadRequest(c, bindingErrorMessage(err))
		return
	}

	dob, err := time.Parse(dobLayout, strings.TrimSpace(req.DOB))
	if err != nil {
		responses.BadRequest(c, "dob must be a valid date in YYYY-MM-DD format")
		return
	}

	photoURL, err := pc.store.Save(req.Photo, "photo", uploads.PhotoTypes)
	if err != nil {
		pc.uploadError(c, err)
		return
	}

	aadhaarURL, err := pc.store.Save(req.AadhaarPhoto, "aadhaarPhoto", uploads.DocumentTypes)
	if err != nil {
		pc.store.Remove(photoURL)
		pc.uploadError(c, err)
		return
	}

	newPlayer := &Player{
		FullName:          strings.TrimSpace(req.FullName),
		DOB:               dob,
		AadhaarNumber:     req.AadhaarNumber,
		PrimaryPhone:      req.PrimaryPhone,
		AlternatePhone:    req.AlternatePhone,
		BloodGroup:        req.BloodGroup,
		MedicalConditions: req.MedicalConditions,
		PrimaryRole:       req.PrimaryRole,
		BattingProfile:    req.BattingProfile,
		BowlingStyle:      req.BowlingStyle,
		AllRounderType:    req.AllRounderType,
		ShirtSize:         req.ShirtSize,
		PantSize:          req.PantSize,
		PreviousLeagues:   req.PreviousLeagues,
		Instagram:         req.Instagram,
		PhotoURL:          photoURL,
		AadhaarPhotoURL:   aadhaarURL,
		Status:            StatusPending,
		// UserID stays unset: public registrations are not tied to a login.
	}

	if err := pc.repo.Create(newPlayer); err != nil {
		log.Printf("PUBLIC REGISTRATION ERROR: %v", err)
		// Don't leave orphaned files behind when the row was never created.
		pc.store.Remove(photoURL)
		pc.store.Remove(aadhaarURL)
		pc.serverError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusCreated,
		"Player registration successful! Waiting for admin approval.", newPlayer)
}

func (pc *PlayerController) uploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, uploads.ErrFileTooLarge):
		responses.BadRequest(c, err.Error())
	case errors.Is(err, uploads.ErrUnsupportedType):
		responses.BadRequest(c, err.Error())
	default:
		log.Printf("UPLOAD ERROR: %v", err)
		pc.serverError(c, err)
	}
}

func (pc *PlayerController) serverError(c *gin.Context, err error) {
	if pc.config.IsProduction() {
		responses.InternalServerError(c, "Server error")
		return
	}
	responses.InternalServerError(c, err.Error())
}

// bindingErrorMessage turns a binding failure into a message naming the
// offending fields.
func bindingErrorMessage(err error) string {
	fields := validator.ParseError(err)
	if len(fields) == 0 {
		return "Invalid request"
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("Missing or invalid fields: %s", strings.Join(names, ", "))
}
