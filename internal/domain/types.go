package domain

import "time"

// Culture is a planted crop batch. It is the root that notes and harvests
// point at through CultureID.
type Culture struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PlantingDate string    `json:"plantingDate,omitempty"`
	SeedName     string    `json:"seedName,omitempty"`
	PlantCount   Quantity  `json:"plantCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type NoteType string

const (
	NoteHistory NoteType = "history"
	NoteHarvest NoteType = "harvest"
)

// Note is a diary entry for a culture. CultureName is copied from the culture
// when the note is written and is not updated when the culture is renamed.
type Note struct {
	ID          string    `json:"id"`
	CultureID   string    `json:"cultureId"`
	CultureName string    `json:"cultureName,omitempty"`
	Type        NoteType  `json:"type"`
	Title       string    `json:"title,omitempty"`
	Content     string    `json:"content,omitempty"`
	Count       Quantity  `json:"count"`
	Notes       string    `json:"notes,omitempty"`
	Date        string    `json:"date,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Harvest is a counted pick from one culture on one date. CultureName is a
// point-in-time copy, like Note.CultureName.
type Harvest struct {
	ID          string    `json:"id"`
	CultureID   string    `json:"cultureId"`
	CultureName string    `json:"cultureName,omitempty"`
	Count       Quantity  `json:"count"`
	Date        string    `json:"date,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DateLayout is the calendar date format used by plantingDate and date fields.
const DateLayout = "2006-01-02"
