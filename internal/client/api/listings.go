package api

import "encoding/json"

// Listing is a provider-defined record. The known fields are pulled out for
// display; everything the provider sends stays available in ExtraInfo.
type Listing struct {
	ID           json.Number    `json:"id"`
	Title        string         `json:"title"`
	Nickname     string         `json:"nickname"`
	Picture      string         `json:"picture"`
	CityName     string         `json:"city_name"`
	Beds         int            `json:"beds"`
	Baths        int            `json:"baths"`
	Accommodates int            `json:"accommodates"`
	ExtraInfo    map[string]any `json:"extra_info"`
}

type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Count   int `json:"count"`
}

type ListingsPage struct {
	Listings   []Listing
	Pagination Pagination
}

type listingsEnvelope struct {
	Listings []Listing   `json:"listings"`
	Data     []Listing   `json:"data"`
	PagiInfo *Pagination `json:"pagi_info"`
}

// NormalizeListings folds the provider's payload shapes into one canonical
// page. A bare array, `{listings:[...]}` and `{data:[...]}` are all
// accepted; anything else yields an empty page. When the payload carries no
// pagination block the result is a single page sized to the listing count.
func NormalizeListings(raw []byte) ListingsPage {
	var listings []Listing
	var pagination *Pagination

	var bare []Listing
	if err := json.Unmarshal(raw, &bare); err == nil {
		listings = bare
	} else {
		var envelope listingsEnvelope
		if err := json.Unmarshal(raw, &envelope); err == nil {
			switch {
			case envelope.Listings != nil:
				listings = envelope.Listings
			case envelope.Data != nil:
				listings = envelope.Data
			}
			pagination = envelope.PagiInfo
		}
	}

	if listings == nil {
		listings = []Listing{}
	}
	if pagination == nil {
		pagination = &Pagination{Page: 1, PerPage: len(listings), Count: len(listings)}
	}

	return ListingsPage{Listings: listings, Pagination: *pagination}
}
