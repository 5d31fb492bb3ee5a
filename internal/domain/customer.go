package domain

type Customer struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	IDProof   string `json:"id_proof,omitempty"`
	CreatedBy int64  `json:"created_by"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}
