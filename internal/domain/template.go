package domain

import "time"

// Template categories (legal document types)
const (
	CategoryContrato   = "contrato"
	CategoryProcuracao = "procuracao"
	CategoryPeticao    = "peticao"
	CategoryAta        = "ata"
	CategoryDeclaracao = "declaracao"
	CategoryOutro      = "outro"
)

// TemplateCategories lists all valid template categories
var TemplateCategories = []string{
	CategoryContrato,
	CategoryProcuracao,
	CategoryPeticao,
	CategoryAta,
	CategoryDeclaracao,
	CategoryOutro,
}

// IsValidCategory reports whether category is a known template category
func IsValidCategory(category string) bool {
	for _, c := range TemplateCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Template represents a reusable legal document skeleton with {{placeholder}} tokens
type Template struct {
	ID           string     `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	UserID       string     `gorm:"column:user_id;type:varchar(128);index" json:"user_id"`
	Name         string     `gorm:"column:name;type:varchar(200);index" json:"name"`
	Description  string     `gorm:"column:description;type:text" json:"description,omitempty"`
	Category     string     `gorm:"column:category;type:varchar(30);index" json:"category"`
	Content      string     `gorm:"column:content;type:mediumtext" json:"content"`
	Placeholders StringList `gorm:"column:placeholders;type:json" json:"placeholders"`
	IsPublic     bool       `gorm:"column:is_public;default:false" json:"is_public"`
	IsFavorite   bool       `gorm:"column:is_favorite;default:false" json:"is_favorite"`
	UsageCount   int        `gorm:"column:usage_count;default:0" json:"usage_count"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name
func (Template) TableName() string { return "templates" }

// TemplateCreateRequest request body for creating a template
type TemplateCreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	Content     string `json:"content" binding:"required"`
	IsPublic    bool   `json:"is_public"`
}

// TemplateUpdateRequest request body for updating a template.
// Pointer fields distinguish "not sent" from zero values.
type TemplateUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Content     *string `json:"content"`
	IsPublic    *bool   `json:"is_public"`
	IsFavorite  *bool   `json:"is_favorite"`
}

// TemplateListFilter filters for listing templates
type TemplateListFilter struct {
	Category      string
	IncludePublic bool
	Page          int
	PerPage       int
}
