package transport

import "encoding/json"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	Admin        AdminProfile `json:"admin"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type AdminProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type CreateAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateAdminRequest struct {
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

type ArticleRequest struct {
	PostType     string          `json:"post_type"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	Content      string          `json:"content"`
	ThumbnailURL string          `json:"thumbnail_url"`
	SEOMeta      json.RawMessage `json:"seo_meta"`
	IsPublic     bool            `json:"is_public"`
}

type CategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type StatsResponse struct {
	Articles   int64 `json:"articles"`
	Categories int64 `json:"categories"`
	Admins     int64 `json:"admins"`
}
