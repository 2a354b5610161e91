package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/blues/fundsy/internal/gateway"
	"github.com/blues/fundsy/internal/lifecycle"
	"github.com/blues/fundsy/internal/logic"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"campaign not found", logic.ErrCampaignNotFound, http.StatusNotFound},
		{"pledge not found", logic.ErrPledgeNotFound, http.StatusNotFound},
		{"invalid transition", lifecycle.ErrInvalidTransition, http.StatusConflict},
		{"goal too low", logic.ErrGoalTooLow, http.StatusUnprocessableEntity},
		{"title taken", logic.ErrTitleTaken, http.StatusUnprocessableEntity},
		{"already settled", logic.ErrPledgeAlreadySettled, http.StatusUnprocessableEntity},
		{"settlement record failed", logic.ErrSettlementRecordFailed, http.StatusBadGateway},
		{"ambiguous outcome", logic.ErrAmbiguousOutcome, http.StatusBadGateway},
		{"declined", &gateway.Error{Code: gateway.CodeDeclined}, http.StatusPaymentRequired},
		{"invalid token", &gateway.Error{Code: gateway.CodeInvalidToken}, http.StatusPaymentRequired},
		{"provider unavailable", &gateway.Error{Code: gateway.CodeProviderUnavailable}, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}
