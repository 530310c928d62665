package types

import (
	"encoding/json"
)

type ReleaseInput struct {
	ArtistName    string  `json:"artistName" binding:"required"`
	AlbumTitle    string  `json:"albumTitle" binding:"required"`
	CoverImageURL *string `json:"coverImageUrl"`
}

type StoreInput struct {
	Name    string `json:"name" binding:"required"`
	Slug    string `json:"slug" binding:"required"`
	IconURL string `json:"iconUrl" binding:"required"`
}

type ListingInput struct {
	StoreSlug          string `json:"storeSlug" binding:"required"`
	SourceProductTitle string `json:"sourceProductTitle" binding:"required"`
	URL                string `json:"url" binding:"required"`
	Price              *int64 `json:"price"`
	Status             string `json:"status"`
}

// ListingPatch distinguishes an absent field from an explicit JSON null.
// The distinction is load-bearing for price: absent leaves it untouched,
// null clears it.
type ListingPatch struct {
	PriceSet  bool
	Price     *int64
	StatusSet bool
	Status    *string
}

func (p *ListingPatch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = ListingPatch{}
	if v, ok := raw["price"]; ok {
		p.PriceSet = true
		if string(v) != "null" {
			var price int64
			if err := json.Unmarshal(v, &price); err != nil {
				return err
			}
			p.Price = &price
		}
	}
	if v, ok := raw["status"]; ok {
		p.StatusSet = true
		if string(v) != "null" {
			var status string
			if err := json.Unmarshal(v, &status); err != nil {
				return err
			}
			p.Status = &status
		}
	}
	return nil
}
