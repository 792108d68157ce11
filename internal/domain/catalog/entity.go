package catalog

import (
	"errors"
	"strings"
)

// SkinTypeAll filter yang menampilkan semua produk
const SkinTypeAll = "All"

// SkinTypeFilters daftar filter di halaman products
var SkinTypeFilters = []string{SkinTypeAll, "Oily", "Dry", "Sensitive", "Combination", "Mature"}

// ErrProductNotFound produk tidak ada di katalog
var ErrProductNotFound = errors.New("product not found")

// ProductID identifier produk
type ProductID int

// Product item katalog (mock)
type Product struct {
	ID        ProductID `json:"id"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Rating    float64   `json:"rating"`
	Reviews   int       `json:"reviews"`
	SkinTypes []string  `json:"skin_types"`
	Concerns  []string  `json:"concerns"`
	Benefits  string    `json:"benefits"`
	ImageURL  string    `json:"image_url,omitempty"`
}

// Matches filter search + skin type seperti halaman products
func (p Product) Matches(query, skinType string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	matchesSearch := q == "" ||
		strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Brand), q)
	return matchesSearch && p.HasSkinType(skinType)
}

// HasSkinType inklusi biasa; filter kosong atau All cocok dengan semua
func (p Product) HasSkinType(skinType string) bool {
	if skinType == "" || strings.EqualFold(skinType, SkinTypeAll) {
		return true
	}
	for _, t := range p.SkinTypes {
		if strings.EqualFold(t, skinType) {
			return true
		}
	}
	return false
}

// IsValidSkinType cek nilai filter
func IsValidSkinType(skinType string) bool {
	if skinType == "" {
		return true
	}
	for _, f := range SkinTypeFilters {
		if strings.EqualFold(f, skinType) {
			return true
		}
	}
	return false
}
