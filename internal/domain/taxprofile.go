package domain

// TaxProfile is a user's billing configuration. TaxEnabled is nil for
// profiles created before the explicit flag existed; enablement is then
// inferred from the rate and registration id.
type TaxProfile struct {
	UserID            int64   `json:"user_id"`
	BusinessName      string  `json:"business_name"`
	TaxEnabled        *bool   `json:"tax_enabled,omitempty"`
	TaxRatePercent    float64 `json:"tax_rate_percent"`
	TaxInclusive      bool    `json:"tax_inclusive"`
	TaxRegistrationID string  `json:"tax_registration_id"`
	CreatedOn         string  `json:"created_on"`
	UpdatedOn         string  `json:"updated_on"`
}
