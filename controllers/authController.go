package controllers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ekomponents/elektrokomp-api/initializers"
	"github.com/ekomponents/elektrokomp-api/middlewares"
	"github.com/ekomponents/elektrokomp-api/models"
	"github.com/ekomponents/elektrokomp-api/utils"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "a user with this email already exists"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid email or password"
	msgAccountDisabled       = "Your account has been disabled."
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgInvalidActivationLink = "Invalid or expired activation link"
	msgActivationSuccess     = "account has been activated successfully."
	msgResetLinkSent         = "Check your email for a password reset link."
	msgUserCreated           = "User created successfully. Check your email to activate your account."
	msgResetTokenError       = "There was an error trying to generate password reset link. Try again later."
	msgUnableToSaveToken     = "unable to save reset token."
	msgUnableToResetPassword = "unable to reset password"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"success": false, "message": message})
}

func sendDataResponse(ctx *gin.Context, status int, data any) {
	sendJSONResponse(ctx, status, gin.H{"success": true, "data": data})
}

// HashPassword is called explicitly before persistence; passwords are never
// hashed in a save hook.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour * 24 * 30).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func findUserByEmail(email string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("email = ?", email).First(&user)
	return user, result.Error
}

func sendWelcomeEmail(user models.User, activationToken string) error {
	emailData := utils.EmailData{
		Name:       user.FirstName,
		Message:    "Thank you for signing up! Click the button below to verify your account.",
		ActionURL:  os.Getenv("FRONTEND_URL") + "/auth/verify-email?token=" + url.QueryEscape(activationToken),
		ActionText: "Verify Account",
	}

	templatePath := filepath.Join("templates", "welcome.html")
	return utils.SendEmail(user.Email, "Welcome to ElectroKomponents", emailData, templatePath)
}

func sendPasswordResetEmail(user models.User, resetToken string) error {
	emailData := utils.EmailData{
		Name:       user.FirstName,
		Message:    "You requested a password reset. Click the button below to reset your password. The link is valid for one hour.",
		ActionURL:  os.Getenv("FRONTEND_URL") + "/auth/reset-password?token=" + url.QueryEscape(resetToken),
		ActionText: "Reset Password",
	}

	templatePath := filepath.Join("templates", "reset_password.html")
	return utils.SendEmail(user.Email, "ElectroKomponents Password Reset", emailData, templatePath)
}

// Signup handles user registration
func Signup(ctx *gin.Context) {
	var signUpData models.User
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if len(signUpData.Password) < 6 {
		sendErrorResponse(ctx, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	if _, err := findUserByEmail(signUpData.Email); err == nil {
		sendErrorResponse(ctx, http.StatusConflict, msgUserAlreadyExists)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error during user check:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	hashedPassword, err := HashPassword(signUpData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}
	signUpData.Password = hashedPassword

	signUpData.Role = models.RoleCustomer
	if signUpData.MembershipType == "" {
		signUpData.MembershipType = models.MembershipIndividual
	}
	if signUpData.MembershipType != models.MembershipCorporate {
		signUpData.CompanyName = ""
		signUpData.TaxNumber = ""
		signUpData.TaxOffice = ""
	}

	activationToken, err := utils.GenerateCode(16)
	if err != nil {
		log.Println("Token generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	signUpData.VerificationToken = activationToken
	signUpData.EmailVerified = false
	signUpData.Active = true

	if result := initializers.DB.Create(&signUpData); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			sendErrorResponse(ctx, http.StatusConflict, msgUserAlreadyExists)
			return
		}
		log.Println("User creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	go func(user models.User, token string) {
		if err := sendWelcomeEmail(user, token); err != nil {
			log.Println("Error sending welcome email:", err)
		}
	}(signUpData, activationToken)

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"success": true, "message": msgUserCreated})
}

// Login authenticates a user and merges any guest cart carried by the cart
// session cookie into the user's persisted cart.
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(loginData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	if !user.Active {
		sendErrorResponse(ctx, http.StatusForbidden, msgAccountDisabled)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	if sessionID := middlewares.CartSessionID(ctx); sessionID != "" {
		if err := cartService.MergeGuestCart(ctx.Request.Context(), sessionID, user.ID); err != nil {
			// the guest lines stay in the store; the next login retries the merge
			log.Println("Guest cart merge failed:", err)
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "data": gin.H{"token": tokenString}})
}

// Logout drops the guest cart cookie. The bearer token itself is discarded
// client side.
func Logout(ctx *gin.Context) {
	ctx.SetCookie("cart_session", "", -1, "/", "", false, true)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "logged out"})
}

// ActivateAccount activates a user account using the activation token
func ActivateAccount(ctx *gin.Context) {
	activationToken := ctx.Param("activationToken")

	result := initializers.DB.Model(&models.User{}).
		Where("verification_token = ?", activationToken).
		Updates(map[string]any{
			"email_verified":     true,
			"verification_token": "",
		})

	if result.Error != nil {
		log.Println("Account activation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidActivationLink)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": msgActivationSuccess})
}

// SendPasswordResetLink sends a password reset link to the user's email. The
// response is identical whether or not the address exists.
func SendPasswordResetLink(ctx *gin.Context) {
	type ForgotPasswordBody struct {
		Email string `json:"email" binding:"required,email"`
	}

	var forgotPasswordData ForgotPasswordBody
	if err := ctx.ShouldBindJSON(&forgotPasswordData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(forgotPasswordData.Email)
	if err != nil {
		sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": msgResetLinkSent})
		return
	}

	passwordResetToken, err := utils.GenerateCode(16)
	if err != nil {
		log.Println("Reset token generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgResetTokenError)
		return
	}

	expiry := time.Now().Add(time.Hour)
	if result := initializers.DB.Model(&models.User{}).
		Where("email = ?", forgotPasswordData.Email).
		Updates(map[string]any{
			"password_reset_token":  passwordResetToken,
			"password_reset_expiry": expiry,
		}); result.Error != nil {
		log.Println("Error saving reset token:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgUnableToSaveToken)
		return
	}

	go func(user models.User, token string) {
		if err := sendPasswordResetEmail(user, token); err != nil {
			log.Println("Error sending password reset email:", err)
		}
	}(user, passwordResetToken)

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": msgResetLinkSent})
}

// ResetPassword resets a user's password using a reset token
func ResetPassword(ctx *gin.Context) {
	type ResetPasswordInfo struct {
		Password string `json:"password" binding:"required,min=6"`
	}

	var resetPasswordData ResetPasswordInfo
	if err := ctx.ShouldBindJSON(&resetPasswordData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	hashedPassword, err := HashPassword(resetPasswordData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	resetToken := ctx.Param("resetToken")
	result := initializers.DB.Model(&models.User{}).
		Where("password_reset_token = ? AND password_reset_expiry > ?", resetToken, time.Now()).
		Updates(map[string]any{
			"password":             hashedPassword,
			"password_reset_token": "",
		})

	if result.Error != nil {
		log.Println("Error resetting password:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgUnableToResetPassword)
		return
	}

	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidActivationLink)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Password reset successful"})
}
