package models

import "time"

type AdminUser struct {
	ID           string     `db:"id"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	IsActive     bool       `db:"is_active"`
	LastLoginAt  *time.Time `db:"last_login_at"`
	CreatedAt    time.Time  `db:"created_at"`
}

type Collection struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	Image       *string   `db:"image"`
	IsVisible   bool      `db:"is_visible"`
	SortOrder   int       `db:"sort_order"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type ContactRequest struct {
	ID                string    `db:"id"`
	Salutation        *string   `db:"salutation"`
	Phone             string    `db:"phone"`
	Email             string    `db:"email"`
	Subject           string    `db:"subject"`
	Message           string    `db:"message"`
	SelectedGemstones []byte    `db:"selected_gemstones"`
	SelectedJewelry   []byte    `db:"selected_jewelry"`
	Status            string    `db:"status"`
	AdminNotes        *string   `db:"admin_notes"`
	CreatedAt         time.Time `db:"created_at"`
}

type Post struct {
	ID          string     `db:"id"`
	Title       string     `db:"title"`
	Slug        string     `db:"slug"`
	Excerpt     *string    `db:"excerpt"`
	Content     *string    `db:"content"`
	Image       *string    `db:"image"`
	IsPublished bool       `db:"is_published"`
	PublishedAt *time.Time `db:"published_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

type Page struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Slug        string    `db:"slug"`
	Content     *string   `db:"content"`
	IsPublished bool      `db:"is_published"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type HeroSlide struct {
	ID        string    `db:"id"`
	Title     *string   `db:"title"`
	Subtitle  *string   `db:"subtitle"`
	Image     string    `db:"image"`
	LinkURL   *string   `db:"link_url"`
	SortOrder int       `db:"sort_order"`
	IsVisible bool      `db:"is_visible"`
	CreatedAt time.Time `db:"created_at"`
}

type NavbarItem struct {
	ID        string    `db:"id"`
	Label     string    `db:"label"`
	Type      string    `db:"type"`
	URL       *string   `db:"url"`
	ParentID  *string   `db:"parent_id"`
	SortOrder int       `db:"sort_order"`
	IsVisible bool      `db:"is_visible"`
	CreatedAt time.Time `db:"created_at"`
}

type AppSetting struct {
	ID        string    `db:"id"`
	Key       string    `db:"setting_key"`
	Value     string    `db:"setting_value"`
	IsPrivate bool      `db:"is_private"`
	UpdatedAt time.Time `db:"updated_at"`
}

type MediaAsset struct {
	ID          string    `db:"id"`
	Filename    *string   `db:"filename"`
	ContentType string    `db:"content_type"`
	SizeBytes   int64     `db:"size_bytes"`
	StorageKey  string    `db:"storage_key"`
	CreatedAt   time.Time `db:"created_at"`
}
