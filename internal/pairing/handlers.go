package pairing

import (
	"encoding/json"
	"net/http"

	"github.com/davidoyelade/willow-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreatePairing(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreatePairingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.service.CreatePairing(r.Context(), userID, req.PartnerID)
	if err != nil {
		switch err {
		case ErrSelfPairing:
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case ErrAlreadyPaired:
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case ErrPartnerNotFound:
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create pairing")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, p)
}

func (h *Handler) GetMyPairing(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	p, err := h.service.GetForUser(r.Context(), userID)
	if err != nil {
		if err == ErrPairingNotFound {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load pairing")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, p)
}
