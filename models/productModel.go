package models

import "gorm.io/gorm"

// Package types mirror the physical packaging of an electronic component.
const (
	PackageSMD    = "SMD"
	PackageRadial = "Radial"
	PackageDIP    = "DIP"
	PackageQFP    = "QFP"
	PackageBGA    = "BGA"
	PackageOther  = "Other"
)

var PackageTypes = []string{PackageSMD, PackageRadial, PackageDIP, PackageQFP, PackageBGA, PackageOther}

type Product struct {
	gorm.Model
	CategoryID       uint    `json:"categoryId" binding:"required"`
	BrandID          *uint   `json:"brandId"`
	PartNumber       string  `json:"partNumber" gorm:"size:100;uniqueIndex" binding:"required"`
	Name             string  `json:"name" gorm:"size:500" binding:"required"`
	Slug             string  `json:"slug" gorm:"size:500;uniqueIndex"`
	Description      string  `json:"description" gorm:"type:text"`
	ShortDescription string  `json:"shortDescription" gorm:"size:500"`
	Price            float64 `json:"price" gorm:"type:decimal(10,2)"`
	TaxRate          int     `json:"taxRate" gorm:"default:20"`
	Stock            int     `json:"stock" gorm:"default:0"`
	MinOrderQty      int     `json:"minOrderQty" gorm:"default:1"`
	PackageType      string  `json:"packageType" gorm:"size:20;default:Other"`
	DatasheetURL     string  `json:"datasheetUrl" gorm:"size:500"`
	Active           bool    `json:"active" gorm:"default:true"`
	Featured         bool    `json:"featured" gorm:"default:false"`
	ViewCount        int     `json:"viewCount" gorm:"default:0"`

	Category   *Category          `json:"category,omitempty"`
	Brand      *Brand             `json:"brand,omitempty"`
	Images     []ProductImage     `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Attributes []ProductAttribute `json:"attributes,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	PriceTiers []PriceTier        `json:"priceTiers,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type ProductImage struct {
	gorm.Model
	ProductID uint   `json:"productId"`
	URL       string `json:"url" gorm:"size:500" binding:"required"`
	SortOrder int    `json:"sortOrder" gorm:"default:0"`
}

type ProductAttribute struct {
	gorm.Model
	ProductID uint   `json:"productId"`
	Name      string `json:"name" gorm:"size:255" binding:"required"`
	Value     string `json:"value" gorm:"size:255" binding:"required"`
}

// PriceTier is a quantity-based unit price override. MaxQty == nil means the
// tier is unbounded above.
type PriceTier struct {
	gorm.Model
	ProductID uint    `json:"productId"`
	MinQty    int     `json:"minQty" binding:"required"`
	MaxQty    *int    `json:"maxQty"`
	Price     float64 `json:"price" gorm:"type:decimal(10,2)" binding:"required"`
}

// Covers reports whether the tier applies to the given quantity.
func (t PriceTier) Covers(qty int) bool {
	if qty < t.MinQty {
		return false
	}
	return t.MaxQty == nil || qty <= *t.MaxQty
}

// VATInclusivePrice returns the base price with tax applied, rounded to two
// decimals.
func (p *Product) VATInclusivePrice() float64 {
	return Round2(p.Price * (1 + float64(p.TaxRate)/100))
}

// UnitPriceFor resolves the unit price for a quantity. The first loaded tier
// covering the quantity wins; without a matching tier the base price applies.
func (p *Product) UnitPriceFor(qty int) float64 {
	for _, tier := range p.PriceTiers {
		if tier.Covers(qty) {
			return tier.Price
		}
	}
	return p.Price
}

// TiersOverlap reports whether any two tiers cover a common quantity. Tier
// batches are rejected before insert when this returns true.
func TiersOverlap(tiers []PriceTier) bool {
	for i := 0; i < len(tiers); i++ {
		for j := i + 1; j < len(tiers); j++ {
			a, b := tiers[i], tiers[j]
			if a.MaxQty != nil && *a.MaxQty < b.MinQty {
				continue
			}
			if b.MaxQty != nil && *b.MaxQty < a.MinQty {
				continue
			}
			return true
		}
	}
	return false
}
