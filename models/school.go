package models

import "time"

// School represents a school profile in the directory.
type School struct {
	ID           string         `bson:"id" json:"id"`
	Name         string         `bson:"name" json:"name"`
	Description  string         `bson:"description,omitempty" json:"description,omitempty"`
	Address      string         `bson:"address,omitempty" json:"address,omitempty"`
	AdminID      string         `bson:"adminId" json:"adminId"` // Owning school_admin account.
	Verified     bool           `bson:"verified" json:"verified"`
	FeeRange     FeeRange       `bson:"feeRange,omitempty" json:"feeRange,omitempty"`
	Ratings      []SchoolRating `bson:"ratings,omitempty" json:"ratings,omitempty"`
	Averages     RatingAverages `bson:"averages" json:"averages"`
	TotalRatings int            `bson:"totalRatings" json:"totalRatings"`
	CreatedAt    time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// FeeRange is an annual fee band in the school's local currency.
type FeeRange struct {
	Min int `bson:"min" json:"min"`
	Max int `bson:"max" json:"max"`
}

// SchoolRating is one parent's review of a school across five categories.
// Scores are integers in [0,5].
type SchoolRating struct {
	ParentID      string    `bson:"parentId" json:"parentId"`
	Facilities    int       `bson:"facilities" json:"facilities"`
	Teaching      int       `bson:"teaching" json:"teaching"`
	Safety        int       `bson:"safety" json:"safety"`
	Environment   int       `bson:"environment" json:"environment"`
	Communication int       `bson:"communication" json:"communication"`
	Comment       string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// RatingAverages holds the running per-category means over all ratings.
type RatingAverages struct {
	Facilities    float64 `bson:"facilities" json:"facilities"`
	Teaching      float64 `bson:"teaching" json:"teaching"`
	Safety        float64 `bson:"safety" json:"safety"`
	Environment   float64 `bson:"environment" json:"environment"`
	Communication float64 `bson:"communication" json:"communication"`
	Overall       float64 `bson:"overall" json:"overall"`
}

// ComputeRatingAverages derives the per-category arithmetic means over
// the given ratings. Overall is the mean of the five category means.
// An empty slice yields the zero value.
func ComputeRatingAverages(ratings []SchoolRating) RatingAverages {
	if len(ratings) == 0 {
		return RatingAverages{}
	}

	var avg RatingAverages
	for _, r := range ratings {
		avg.Facilities += float64(r.Facilities)
		avg.Teaching += float64(r.Teaching)
		avg.Safety += float64(r.Safety)
		avg.Environment += float64(r.Environment)
		avg.Communication += float64(r.Communication)
	}
	n := float64(len(ratings))
	avg.Facilities /= n
	avg.Teaching /= n
	avg.Safety /= n
	avg.Environment /= n
	avg.Communication /= n
	avg.Overall = (avg.Facilities + avg.Teaching + avg.Safety + avg.Environment + avg.Communication) / 5
	return avg
}
