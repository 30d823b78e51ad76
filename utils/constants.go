// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix prefixes token-hash keys in the auth cache DB.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is how long a verified token hash stays cached.
const AuthCacheTTL = time.Hour

// SchoolListCacheKey caches the public verified-school listing.
const SchoolListCacheKey = "schools:verified"

// SchoolListCacheTTL bounds staleness of the public school listing.
const SchoolListCacheTTL = 5 * time.Minute

// CancellationWindowDays is the minimum number of calendar days before
// a tour's date that a parent may still cancel a booking.
const CancellationWindowDays = 2

// MaxTimeSlotsPerTour caps the number of offered slots on a tour.
const MaxTimeSlotsPerTour = 3

// TourDateLayout is the wire and storage format for tour dates.
const TourDateLayout = "2006-01-02"
