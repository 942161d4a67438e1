package domain

import (
	"fmt"
	"time"

	"rental-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a guest's rating of a Listing. A guest may review a listing once.
type Review struct {
	ReviewID  uuid.UUID `gorm:"column:review_id;type:uuid;primaryKey" json:"id"`
	ListingID uuid.UUID `gorm:"column:listing_id;type:uuid;not null;uniqueIndex:idx_reviews_listing_guest" json:"listing" validate:"-"`
	Listing   *Listing  `gorm:"foreignKey:ListingID;references:ID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	GuestName string    `gorm:"column:guest_name;size:255;not null;uniqueIndex:idx_reviews_listing_guest" json:"guest_name" validate:"required,max=255"`
	Rating    int       `gorm:"column:rating;not null;check:chk_reviews_rating,rating BETWEEN 1 AND 5" json:"rating" validate:"oneof=1 2 3 4 5"`
	Comment   *string   `gorm:"column:comment;type:text" json:"comment"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index" json:"created_at" validate:"-"`
}

func (Review) TableName() string {
	return "reviews"
}

// BeforeCreate sets review_id if not already set.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ReviewID == uuid.Nil {
		r.ReviewID = uuid.New()
	}
	return nil
}

func (r *Review) String() string {
	title := r.ListingID.String()
	if r.Listing != nil {
		title = r.Listing.Title
	}
	return fmt.Sprintf("Review for %s by %s - Rating: %d", title, r.GuestName, r.Rating)
}

func (r *Review) Validate() error {
	fields := validation.Struct(r)
	if fields == nil {
		fields = map[string]string{}
	}
	if r.ListingID == uuid.Nil {
		fields["listing"] = "This field is required."
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ReviewPatch only allows correcting the reviewer's name; rating and comment
// are fixed once written.
type ReviewPatch struct {
	GuestName *string `json:"guest_name" validate:"omitnil,notblank,max=255"`
}

func (p ReviewPatch) Validate() error {
	if fields := validation.Struct(p); fields != nil {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (p ReviewPatch) IsEmpty() bool {
	return p.GuestName == nil
}

func (p ReviewPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.GuestName != nil {
		cols["guest_name"] = *p.GuestName
	}
	return cols
}

// ReviewFilter selects reviews; default order is newest first.
type ReviewFilter struct {
	ListingID *uuid.UUID
	Order     string
}
