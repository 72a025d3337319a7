package handler

import "github.com/bagibarang-its/inventory-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Message string `json:"message"`
}

// messageResponse is a bare confirmation.
type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	OrganizationName string `json:"organizationName" validate:"max=128"`
	AccountName      string `json:"accountName"      validate:"max=64"`
	Email            string `json:"email"            validate:"omitempty,email,max=254"`
	Password         string `json:"password"         validate:"max=72"`
}

type loginRequest struct {
	AccountName string `json:"accountName"`
	Password    string `json:"password"`
}

type authResponse struct {
	Message      string               `json:"message,omitempty"`
	Token        string               `json:"token"`
	Organization *domain.Organization `json:"organization"`
}

type meResponse struct {
	Organization *domain.Organization `json:"organization"`
}
