package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sitca-league/sitca-backend/config"
	"github.com/sitca-league/sitca-backend/pkg/responses"
	"github.com/sitca-league/sitca-backend/pkg/token"
	"github.com/sitca-league/sitca-backend/utils"
)

// Hash of a throwaway password, compared against when the email is unknown so
// both failure paths do the same amount of work.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

type AuthController struct {
	repo   AuthRepository
	config *config.Config
}

func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{
		repo:   repo,
		config: cfg,
	}
}

// @Summary      Login
// @Description  Authenticate with email and password, returns a bearer token valid for 24 hours.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200   {object} LoginResponse "Login successful, returns token and user info"
// @Failure      400   {object} responses.ErrorResponse "Missing email or password"
// @Failure      401   {object} responses.ErrorResponse "Invalid credentials"
// @Failure      500   {object} responses.ErrorResponse "Server configuration error"
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Email and password are required")
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		responses.BadRequest(c, "Email and password are required")
		return
	}

	if ac.config.JWT.Secret == "" {
		log.Println("CRITICAL: JWT_SECRET is not set")
		responses.InternalServerError(c, "Server configuration error")
		return
	}

	foundUser, err := ac.repo.GetUserByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("LOGIN ERROR: %v", err)
		ac.serverError(c, err)
		return
	}

	// Same response for unknown email and wrong password.
	passwordValid := false
	if foundUser != nil {
		passwordValid = utils.CheckPassword(foundUser.Password, req.Password)
	} else {
		bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(req.Password))
	}

	if foundUser == nil || !passwordValid {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}

	signed, err := token.GenerateJWT(foundUser.ID, foundUser.Role, ac.config.JWT.Secret, ac.config.JWT.ExpiryHours)
	if err != nil {
		log.Printf("LOGIN ERROR: token generation failed: %v", err)
		ac.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Token:   signed,
		User:    FilterUserRecord(foundUser),
	})
}

func (ac *AuthController) serverError(c *gin.Context, err error) {
	if ac.config.IsProduction() {
		responses.InternalServerError(c, "An error occurred during login. Please try again later.")
		return
	}
	responses.InternalServerError(c, err.Error())
}
