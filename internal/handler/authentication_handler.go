package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"auth-api/internal/service"

	"go.uber.org/zap"
)

const requestTimeout = 3 * time.Second

type AuthenticationHandler struct {
	AuthenticationService *service.AuthenticationService
	UserService           *service.UserService
	Logger                *zap.Logger
}

func NewAuthenticationHandler(
	authenticationService *service.AuthenticationService,
	userService *service.UserService,
	logger *zap.Logger,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		AuthenticationService: authenticationService,
		UserService:           userService,
		Logger:                logger,
	}
}

type SignupRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates a new user account.
func (handler *AuthenticationHandler) Signup(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	var signupRequest SignupRequest
	if err := json.NewDecoder(request.Body).Decode(&signupRequest); err != nil {
		writeResponse(writer, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if signupRequest.Email == "" || signupRequest.Password == "" {
		writeResponse(writer, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	user, err := handler.UserService.Create(ctx, service.CreateUserRequest{
		FirstName:   signupRequest.FirstName,
		LastName:    signupRequest.LastName,
		Email:       signupRequest.Email,
		Password:    signupRequest.Password,
		PhoneNumber: signupRequest.PhoneNumber,
	})
	if err != nil {
		handler.Logger.Warn("signup failed", zap.Error(err))
		writeError(writer, err)
		return
	}

	writeResponse(writer, http.StatusCreated, "User created successfully", toUserResponse(user))
}

// Login exchanges email/password for an access/refresh token pair.
func (handler *AuthenticationHandler) Login(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	var loginRequest LoginRequest
	if err := json.NewDecoder(request.Body).Decode(&loginRequest); err != nil {
		writeResponse(writer, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	tokensPair, err := handler.AuthenticationService.Login(ctx, loginRequest.Email, loginRequest.Password)
	if err != nil {
		handler.Logger.Warn("login failed", zap.String("email", loginRequest.Email), zap.Error(err))
		writeError(writer, err)
		return
	}

	writeResponse(writer, http.StatusOK, "Login successful", tokensPair)
}

// Logout revokes the refresh token presented in the Authorization header.
func (handler *AuthenticationHandler) Logout(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	authorizationHeader := request.Header.Get("Authorization")
	if authorizationHeader == "" {
		writeResponse(writer, http.StatusUnauthorized, "missing Authorization header", nil)
		return
	}

	if err := handler.AuthenticationService.Logout(ctx, authorizationHeader); err != nil {
		handler.Logger.Warn("logout failed", zap.Error(err))
		writeError(writer, err)
		return
	}

	writeResponse(writer, http.StatusOK, "Logout successful", nil)
}

// RefreshToken rotates the refresh token presented in the Authorization
// header and returns a new pair.
func (handler *AuthenticationHandler) RefreshToken(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	authorizationHeader := request.Header.Get("Authorization")
	if authorizationHeader == "" {
		writeResponse(writer, http.StatusUnauthorized, "missing Authorization header", nil)
		return
	}

	tokensPair, err := handler.AuthenticationService.Refresh(ctx, authorizationHeader)
	if err != nil {
		handler.Logger.Warn("token refresh failed", zap.Error(err))
		writeError(writer, err)
		return
	}

	writeResponse(writer, http.StatusOK, "New access token generated", tokensPair)
}
