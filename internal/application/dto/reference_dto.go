package dto

import "time"

// ReferenceRequest body de criação e edição de cadastro.
type ReferenceRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Details string `json:"details,omitempty"`
	Active  *bool  `json:"active,omitempty"`
}

// ReferenceDTO resposta de um cadastro.
type ReferenceDTO struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Details   string    `json:"details,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
