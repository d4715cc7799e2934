package domain

import (
	"time"

	"github.com/google/uuid"
)

// FaalLabel is drawn after the date on the top ribbon.
const FaalLabel = "فال حافظ-"

// Card holds the inputs of one composition.
type Card struct {
	Background []byte
	Font       []byte
	DateText   string
	PoemText   string
}

// Post is a composed card ready to publish.
type Post struct {
	Date    LocalizedDate
	Caption string // raw poem text, sent as the photo caption
	PNG     []byte
}

// Delivery is one journal entry describing a publish attempt.
type Delivery struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	Caption   string    `json:"caption"`
	Status    int       `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDelivery creates a delivery record stamped with a fresh id and the current time.
func NewDelivery(date, caption string, status int, err error) Delivery {
	d := Delivery{
		ID:        uuid.New(),
		Date:      date,
		Caption:   caption,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if err != nil {
		d.Error = err.Error()
	}
	return d
}

// Succeeded reports whether the publish endpoint answered 200.
func (d Delivery) Succeeded() bool {
	return d.Status == 200 && d.Error == ""
}
