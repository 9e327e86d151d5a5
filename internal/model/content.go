package model

import "time"

// Page is one editable website page: hero copy, CTA, SEO metadata, and the
// main content blocks stored as a JSON document. Only published pages are
// visible through the public API.
type Page struct {
	ID              string    `json:"id" db:"id"`
	Slug            string    `json:"slug" db:"slug"`
	Title           string    `json:"title" db:"title"`
	HeroHeadline    string    `json:"hero_headline,omitempty" db:"hero_headline"`
	HeroSubheadline string    `json:"hero_subheadline,omitempty" db:"hero_subheadline"`
	MainContentJSON string    `json:"main_content_json,omitempty" db:"main_content_json"`
	CTAText         string    `json:"cta_text,omitempty" db:"cta_text"`
	CTALink         string    `json:"cta_link,omitempty" db:"cta_link"`
	MetaTitle       string    `json:"meta_title,omitempty" db:"meta_title"`
	MetaDescription string    `json:"meta_description,omitempty" db:"meta_description"`
	IsPublished     bool      `json:"is_published" db:"is_published"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Testimonial is a client quote shown on the marketing site once approved.
type Testimonial struct {
	ID             string    `json:"id" db:"id"`
	AuthorName     string    `json:"author_name" db:"author_name"`
	AuthorLocation string    `json:"author_location,omitempty" db:"author_location"`
	Quote          string    `json:"quote" db:"quote"`
	OrderIndex     int       `json:"order_index" db:"order_index"`
	IsApproved     bool      `json:"is_approved" db:"is_approved"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// FAQItem is a question/answer pair, ordered by DisplayOrder on the site.
type FAQItem struct {
	ID           string    `json:"id" db:"id"`
	Question     string    `json:"question" db:"question"`
	Answer       string    `json:"answer" db:"answer"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	IsPublished  bool      `json:"is_published" db:"is_published"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Disclaimer is a named block of legal text. DisplayHint tells the frontend
// where to render it (footer, contact form, etc).
type Disclaimer struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Content     string    `json:"content" db:"content"`
	DisplayHint string    `json:"display_hint,omitempty" db:"display_hint"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
