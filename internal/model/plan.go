package model

import "time"

// Plan represents a saved study plan.
//
// Content is the serialized PlanContent JSON, stored exactly as generated.
// The store treats it as opaque text; it is decoded only by clients (and by
// tests). UserID is the owning account; every read and delete of a plan is
// scoped by it.
//
// Plans are immutable once created: there is no update operation, only
// create, read, and delete.
type Plan struct {
	ID        string    `json:"id"         db:"id"`
	UserID    string    `json:"user_id"    db:"user_id"`
	Theme     string    `json:"theme"      db:"theme"`
	Duration  string    `json:"duration"   db:"duration"` // raw user input, e.g. "2 semanas"
	Content   string    `json:"content"    db:"content"`  // serialized PlanContent
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PlanContent is the structured payload stored in Plan.Content.
type PlanContent struct {
	Description string       `json:"description"`
	Modules     []PlanModule `json:"modules"`
}

// PlanModule is one section of a plan: a title and its topic strings.
type PlanModule struct {
	Title  string   `json:"title"`
	Topics []string `json:"topics"`
}
