package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	ParentID    *uint  `json:"parentId"`
	Name        string `json:"name" gorm:"size:255" binding:"required"`
	Slug        string `json:"slug" gorm:"size:255;uniqueIndex"`
	Icon        string `json:"icon" gorm:"size:100"`
	ImageURL    string `json:"imageUrl" gorm:"size:255"`
	Description string `json:"description" gorm:"type:text"`
	SortOrder   int    `json:"sortOrder" gorm:"default:0"`
	Active      bool   `json:"active" gorm:"default:true"`

	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

type Brand struct {
	gorm.Model
	Name    string `json:"name" gorm:"size:255" binding:"required"`
	Slug    string `json:"slug" gorm:"size:255;uniqueIndex"`
	LogoURL string `json:"logoUrl" gorm:"size:255"`
	Active  bool   `json:"active" gorm:"default:true"`
}

// Slider is a homepage hero banner managed from the admin panel.
type Slider struct {
	gorm.Model
	Title       string `json:"title" gorm:"size:255"`
	Subtitle    string `json:"subtitle" gorm:"size:255"`
	Description string `json:"description" gorm:"type:text"`
	ImageURL    string `json:"imageUrl" gorm:"size:500" binding:"required"`
	Link        string `json:"link" gorm:"size:500"`
	ButtonText  string `json:"buttonText" gorm:"size:100;default:Explore"`
	SortOrder   int    `json:"sortOrder" gorm:"default:0"`
	Active      bool   `json:"active" gorm:"default:true"`
}
