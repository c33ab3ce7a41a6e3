package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"auth-api/internal/model"
	"auth-api/internal/security"
	"auth-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.Logger
}

func NewUserHandler(userService *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		UserService: userService,
		Logger:      logger,
	}
}

type UserResponse struct {
	Id          string   `json:"id"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Roles       []string `json:"roles"`
	IsVerified  bool     `json:"isVerified"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

func toUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		Id:          user.Id,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Roles:       user.Roles,
		IsVerified:  user.IsVerified,
		CreatedAt:   user.CreatedAt.Format("2006-01-02T15:04:05"),
		UpdatedAt:   user.UpdatedAt.Format("2006-01-02T15:04:05"),
	}
}

type UserPageResponse struct {
	Content    []*UserResponse `json:"content"`
	Page       int             `json:"page"`
	Size       int             `json:"size"`
	TotalCount int64           `json:"totalCount"`
}

type UpdateUserRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// GetUsers lists users filtered by optional search parameters with
// pagination and sorting.
func (handler *UserHandler) GetUsers(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	query := request.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	size, err := strconv.Atoi(query.Get("size"))
	if err != nil || size <= 0 {
		size = 10
	}

	sortBy := query.Get("sortBy")
	if sortBy == "" {
		sortBy = "createdAt"
	}
	sortDirection := query.Get("sortDirection")
	if sortDirection == "" {
		sortDirection = "DESC"
	}

	criteria := model.SearchCriteria{
		Email:     query.Get("email"),
		FirstName: query.Get("firstName"),
		LastName:  query.Get("lastName"),
	}

	result, err := handler.UserService.Find(ctx, criteria, model.PageRequest{
		Page:          page,
		Size:          size,
		SortBy:        sortBy,
		SortDirection: sortDirection,
	})
	if err != nil {
		handler.Logger.Error("user search failed", zap.Error(err))
		writeError(writer, err)
		return
	}

	content := make([]*UserResponse, 0, len(result.Users))
	for i := range result.Users {
		content = append(content, toUserResponse(&result.Users[i]))
	}

	writeResponse(writer, http.StatusOK, "Users retrieved successfully", &UserPageResponse{
		Content:    content,
		Page:       result.Page,
		Size:       result.Size,
		TotalCount: result.TotalCount,
	})
}

// GetCurrentUser echoes the identity established by the authentication gate.
func (handler *UserHandler) GetCurrentUser(writer http.ResponseWriter, request *http.Request) {
	identity, ok := security.IdentityFrom(request.Context())
	if !ok {
		writeResponse(writer, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	writeResponse(writer, http.StatusOK, "Current user", map[string]interface{}{
		"subject": identity.Subject,
		"roles":   identity.Roles,
	})
}

func (handler *UserHandler) UpdateUser(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	id := chi.URLParam(request, "id")

	var updateRequest UpdateUserRequest
	if err := json.NewDecoder(request.Body).Decode(&updateRequest); err != nil {
		writeResponse(writer, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	user, err := handler.UserService.Update(ctx, id, service.UpdateUserRequest{
		FirstName:   updateRequest.FirstName,
		LastName:    updateRequest.LastName,
		Email:       updateRequest.Email,
		PhoneNumber: updateRequest.PhoneNumber,
	})
	if err != nil {
		handler.Logger.Warn("user update failed", zap.String("userId", id), zap.Error(err))
		writeError(writer, err)
		return
	}

	writeResponse(writer, http.StatusOK, "User successfully updated", toUserResponse(user))
}

func (handler *UserHandler) DeleteUser(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	id := chi.URLParam(request, "id")

	if err := handler.UserService.Delete(ctx, id); err != nil {
		handler.Logger.Warn("user delete failed", zap.String("userId", id), zap.Error(err))
		writeError(writer, err)
		return
	}

	writeResponse(writer, http.StatusOK, "User successfully deleted", nil)
}
