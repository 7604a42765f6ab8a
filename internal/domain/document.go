package domain

import "time"

// Generated document statuses. Transitions form a free graph: any status may
// be set directly by the user; only content changes create versions.
const (
	StatusDraft    = "draft"
	StatusReview   = "review"
	StatusApproved = "approved"
	StatusSigned   = "signed"
)

// DocumentStatuses lists all valid document statuses
var DocumentStatuses = []string{StatusDraft, StatusReview, StatusApproved, StatusSigned}

// IsValidStatus reports whether status is a known document status
func IsValidStatus(status string) bool {
	for _, s := range DocumentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// GeneratedDocument represents the persisted result of resolving one template
// (or an assembly of templates) against merged placeholder data. It owns its
// content independently of the source templates after creation.
type GeneratedDocument struct {
	ID                string     `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	UserID            string     `gorm:"column:user_id;type:varchar(128);index" json:"user_id"`
	Title             string     `gorm:"column:title;type:varchar(255)" json:"title"`
	Category          string     `gorm:"column:category;type:varchar(30);index" json:"category"`
	Status            string     `gorm:"column:status;type:varchar(20);default:'draft';index" json:"status"`
	Content           string     `gorm:"column:content;type:mediumtext" json:"content"`
	Version           int        `gorm:"column:version;default:1" json:"version"`
	ClientID          *string    `gorm:"column:client_id;type:char(36);index" json:"client_id,omitempty"`
	CaseID            *string    `gorm:"column:case_id;type:char(36);index" json:"case_id,omitempty"`
	TemplateIDs       StringList `gorm:"column:template_ids;type:json" json:"template_ids"`
	PlaceholderValues StringMap  `gorm:"column:placeholder_values;type:json" json:"placeholder_values,omitempty"`
	FileKey           string     `gorm:"column:file_key;type:varchar(500)" json:"file_key,omitempty"`
	FileURL           string     `gorm:"column:file_url;type:varchar(500)" json:"file_url,omitempty"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name
func (GeneratedDocument) TableName() string { return "document_automations" }

// DocumentVersion is an immutable snapshot of a document's prior content.
// Rows are append-only: one row per historical value of the content.
type DocumentVersion struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DocumentID    string    `gorm:"column:document_id;type:char(36);index" json:"document_id"`
	VersionNumber int       `gorm:"column:version_number" json:"version_number"`
	Content       string    `gorm:"column:content;type:mediumtext" json:"content"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName returns the table name
func (DocumentVersion) TableName() string { return "document_versions" }

// GenerateRequest request body for generating a document from one template
type GenerateRequest struct {
	TemplateID     string            `json:"template_id" binding:"required"`
	Placeholders   map[string]string `json:"placeholders"`
	ClientID       string            `json:"client_id"`
	CaseID         string            `json:"case_id"`
	Title          string            `json:"title"`
	StrictAutoFill bool              `json:"strict_auto_fill"`
	EscapeValues   *bool             `json:"escape_values"`
}

// AssemblyRequest request body for combining multiple templates in order
type AssemblyRequest struct {
	TemplateIDs    []string          `json:"template_ids" binding:"required"`
	Placeholders   map[string]string `json:"placeholders"`
	ClientID       string            `json:"client_id"`
	CaseID         string            `json:"case_id"`
	Title          string            `json:"title"`
	Separator      string            `json:"separator"`
	StrictAutoFill bool              `json:"strict_auto_fill"`
	EscapeValues   *bool             `json:"escape_values"`
}

// DocumentCreateRequest request body for creating a document manually
type DocumentCreateRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Content  string `json:"content"`
	Category string `json:"category"`
	ClientID string `json:"client_id"`
	CaseID   string `json:"case_id"`
}

// DocumentUpdateRequest request body for updating a document.
// Pointer fields distinguish "not sent" from zero values.
type DocumentUpdateRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
	Status   *string `json:"status"`
	// CreateVersion archives the current content before replacing it.
	// Defaults to true when omitted.
	CreateVersion *bool `json:"create_version"`
}

// ReorderRequest moves one entry of an assembly selection up or down
type ReorderRequest struct {
	TemplateIDs []string `json:"template_ids" binding:"required"`
	Index       int      `json:"index"`
	Direction   int      `json:"direction" binding:"required,oneof=-1 1"`
}

// DocumentListFilter filters for listing generated documents
type DocumentListFilter struct {
	Category string
	Status   string
	ClientID string
	CaseID   string
	Limit    int
}

// GenerationResult is the response payload of generate/assembly: the stored
// document plus merge diagnostics so the caller can prompt for missing fields.
type GenerationResult struct {
	Document               *GeneratedDocument `json:"document"`
	UnresolvedPlaceholders []string           `json:"unresolved_placeholders"`
	AutoFillUnavailable    bool               `json:"auto_fill_unavailable"`
}

// DocumentStats aggregate counts for the user's generated documents
type DocumentStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByCategory map[string]int64 `json:"by_category"`
}
