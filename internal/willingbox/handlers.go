package willingbox

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/davidoyelade/willow-backend/internal/common/utils"
)

// ErrNoPairing is returned by a PairingResolver when the calling user
// has not paired with a partner yet.
var ErrNoPairing = errors.New("user has no active pairing")

// PairingRef is the slice of pairing state the cycle engine needs: an
// opaque id and the two partner identities for slot resolution.
type PairingRef struct {
	ID       string
	PartnerA int64
	PartnerB int64
}

// PairingResolver resolves the authenticated user to their pairing.
// Implemented by the pairing service; the engine performs no identity
// work of its own.
type PairingResolver interface {
	ResolveForUser(ctx context.Context, userID int64) (PairingRef, error)
}

type Handler struct {
	service  Service
	pairings PairingResolver
}

func NewHandler(service Service, pairings PairingResolver) *Handler {
	return &Handler{service: service, pairings: pairings}
}

func (h *Handler) GetActiveBox(w http.ResponseWriter, r *http.Request) {
	ref, slot, ok := h.resolve(w, r)
	if !ok {
		return
	}

	box, phase, err := h.service.EnsureActiveBox(r.Context(), ref.ID, ref.PartnerA, ref.PartnerB)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, NewBoxView(box, phase, slot))
}

func (h *Handler) SubmitWishes(w http.ResponseWriter, r *http.Request) {
	ref, slot, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var dto SubmitWishListDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	box, err := h.service.SubmitWishList(r.Context(), ref.ID, slot, dto.ToWishes())
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, NewBoxView(box, DerivePhase(box, time.Now()), slot))
}

func (h *Handler) SubmitSelection(w http.ResponseWriter, r *http.Request) {
	ref, slot, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var dto SubmitSelectionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	box, err := h.service.SubmitWillingSelection(r.Context(), ref.ID, slot, dto.ToEntries())
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, NewBoxView(box, DerivePhase(box, time.Now()), slot))
}

func (h *Handler) SubmitGuesses(w http.ResponseWriter, r *http.Request) {
	ref, slot, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var dto SubmitGuessesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	score, err := h.service.SubmitGuesses(r.Context(), ref.ID, slot, dto.ToGuesses())
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, NewScoreView(score, slot))
}

func (h *Handler) GetWeeklyScore(w http.ResponseWriter, r *http.Request) {
	ref, slot, ok := h.resolve(w, r)
	if !ok {
		return
	}

	week, err := strconv.Atoi(mux.Vars(r)["week"])
	if err != nil || week < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid week number")
		return
	}

	score, err := h.service.GetWeeklyScore(r.Context(), ref.ID, week)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, NewScoreView(score, slot))
}

// resolve pulls the authenticated user from the request context and
// maps them to their pairing and partner slot. On failure it writes
// the response itself and returns ok = false.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (PairingRef, PartnerSlot, bool) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return PairingRef{}, "", false
	}

	ref, err := h.pairings.ResolveForUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNoPairing) {
			utils.RespondWithError(w, http.StatusNotFound, "You are not in a pairing yet")
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve pairing")
		}
		return PairingRef{}, "", false
	}

	var slot PartnerSlot
	switch userID {
	case ref.PartnerA:
		slot = SlotA
	case ref.PartnerB:
		slot = SlotB
	default:
		utils.RespondWithError(w, http.StatusForbidden, ErrNotParticipant.Error())
		return PairingRef{}, "", false
	}
	return ref, slot, true
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case IsValidation(err):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case err == ErrInvalidPhase:
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case err == ErrLocked:
		utils.RespondWithError(w, http.StatusLocked, err.Error())
	case err == ErrConflict:
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case err == ErrBoxNotFound, err == ErrScoreNotFound:
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
