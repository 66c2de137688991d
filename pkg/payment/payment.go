// Package payment defines the boundary to the external payment collaborator.
// The order service builds a checkout session request from a priced cart;
// the actual order is created out-of-band when the provider confirms the
// payment.
package payment

import (
	"fmt"

	"github.com/google/uuid"
)

// CheckoutSessionRequest describes the amount to charge and the callback
// destinations. Amount is in minor currency units. Metadata carries the
// resolved shipping address fields opaquely so the order can be
// reconstructed on payment confirmation.
type CheckoutSessionRequest struct {
	AmountMinorUnits  int64             `json:"amount_minor_units"`
	Currency          string            `json:"currency"`
	SuccessURL        string            `json:"success_url"`
	CancelURL         string            `json:"cancel_url"`
	CustomerEmail     string            `json:"customer_email"`
	ClientReferenceID string            `json:"client_reference_id"`
	Metadata          map[string]string `json:"metadata"`
}

// CheckoutSession is the provider's handle for a created payment session.
type CheckoutSession struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
	CheckoutSessionRequest
}

// Provider creates payment sessions with the external gateway.
type Provider interface {
	CreateSession(req CheckoutSessionRequest) (*CheckoutSession, error)
}

// SandboxProvider fabricates sessions locally. It stands in for the real
// gateway in development and lets the checkout endpoint run end to end
// without network access.
type SandboxProvider struct {
	// BaseURL is where fabricated session URLs point, e.g. a local
	// payment simulator page.
	BaseURL string
}

// NewSandboxProvider creates a SandboxProvider.
func NewSandboxProvider(baseURL string) *SandboxProvider {
	return &SandboxProvider{BaseURL: baseURL}
}

// CreateSession returns a session echoing the request with a generated ID.
func (p *SandboxProvider) CreateSession(req CheckoutSessionRequest) (*CheckoutSession, error) {
	if req.AmountMinorUnits <= 0 {
		return nil, fmt.Errorf("checkout amount must be positive, got %d", req.AmountMinorUnits)
	}
	id := "cs_" + uuid.New().String()
	return &CheckoutSession{
		ID:                     id,
		URL:                    fmt.Sprintf("%s/pay/%s", p.BaseURL, id),
		Status:                 "open",
		CheckoutSessionRequest: req,
	}, nil
}
