package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/kodipay/kodipay-server/internal/middleware"
	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/utils"
)

var validate = validator.New()

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation. Writes the error response itself; callers just bail on false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", fieldErrors(err), err,
		)
		return false
	}
	return true
}

// fieldErrors flattens validator output into field -> tag pairs for the
// response details.
func fieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// identity pulls the authenticated caller from the request context. Responds
// 401 and returns false when the middleware did not run.
func identity(w http.ResponseWriter, r *http.Request) (uuid.UUID, models.RoleType, bool) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required", nil,
		)
		return uuid.Nil, "", false
	}
	role, _ := middleware.RoleFrom(r.Context())
	return userID, role, true
}

// pathUUID parses a uuid path variable. Responds 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid "+name, nil, err,
		)
		return uuid.Nil, false
	}
	return id, true
}
