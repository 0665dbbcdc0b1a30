package controllers

import (
	"net/http"

	"github.com/kodipay/kodipay-server/internal/dtos"
	"github.com/kodipay/kodipay-server/internal/services"
	"github.com/kodipay/kodipay-server/internal/utils"
)

type UserController struct {
	userService services.UserService
}

func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// Me -> GET /api/users/me
func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}

	user, err := c.userService.GetByID(r.Context(), userID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.NewUserResponse(user))
}

// Get -> GET /api/users/{userID}
func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := identity(w, r); !ok {
		return
	}
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	user, err := c.userService.GetByID(r.Context(), userID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.NewUserResponse(user))
}

// ListTenants -> GET /api/users/tenants
func (c *UserController) ListTenants(w http.ResponseWriter, r *http.Request) {
	_, role, ok := identity(w, r)
	if !ok {
		return
	}

	users, err := c.userService.ListTenants(r.Context(), role)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	out := make([]dtos.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dtos.NewUserResponse(u))
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// Update -> PUT /api/users/{userID}
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	requesterID, role, ok := identity(w, r)
	if !ok {
		return
	}
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	var req dtos.UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := c.userService.Update(r.Context(), requesterID, role, userID, services.UserUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Apartment:   req.Apartment,
		HouseNumber: req.HouseNumber,
		MpesaNumber: req.MpesaNumber,
	})
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.NewUserResponse(user))
}
