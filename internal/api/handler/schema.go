package handler

import "github.com/imoveiscrm/realestate-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// registerRequest has no role field: every self-registered account is a client.
type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"omitempty,max=120"`
}

type authResponse struct {
	User    *domain.User `json:"user"`
	Message string       `json:"message"`
}

type meResponse struct {
	User *domain.User `json:"user"`
}

type gateResponse struct {
	Outcome string       `json:"outcome"`
	Target  string       `json:"target,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

// --- Properties ---

type createPropertyRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Location    string   `json:"location"    validate:"required"`
	Price       string   `json:"price"       validate:"required"`
	Bedrooms    *int     `json:"bedrooms"    validate:"required,min=0"`
	Bathrooms   *int     `json:"bathrooms"   validate:"required,min=0"`
	Area        *int     `json:"area"        validate:"required,min=0"`
	Images      []string `json:"images"      validate:"required,min=1,dive,required"`
}

func (r createPropertyRequest) toDomain() domain.NewProperty {
	return domain.NewProperty{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Price:       r.Price,
		Bedrooms:    *r.Bedrooms,
		Bathrooms:   *r.Bathrooms,
		Area:        *r.Area,
		Images:      r.Images,
	}
}

type updatePropertyRequest struct {
	Title       *string   `json:"title"       validate:"omitempty,min=1"`
	Description *string   `json:"description" validate:"omitempty,min=1"`
	Location    *string   `json:"location"    validate:"omitempty,min=1"`
	Price       *string   `json:"price"       validate:"omitempty,min=1"`
	Bedrooms    *int      `json:"bedrooms"    validate:"omitempty,min=0"`
	Bathrooms   *int      `json:"bathrooms"   validate:"omitempty,min=0"`
	Area        *int      `json:"area"        validate:"omitempty,min=0"`
	Images      *[]string `json:"images"      validate:"omitempty,min=1,dive,required"`
}

func (r updatePropertyRequest) toDomain() domain.PropertyPatch {
	return domain.PropertyPatch{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Price:       r.Price,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		Area:        r.Area,
		Images:      r.Images,
	}
}

type propertyListResponse struct {
	Properties []*domain.Property `json:"properties"`
}

type propertyResponse struct {
	Property *domain.Property `json:"property"`
	Message  string           `json:"message,omitempty"`
}

type likeResponse struct {
	Like    *domain.PropertyLike `json:"like"`
	Message string               `json:"message"`
}

type likedPropertiesResponse struct {
	PropertyIDs []string `json:"propertyIds"`
}
