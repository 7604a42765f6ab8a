package domain

import "time"

// Case statuses
const (
	CaseNovo        = "novo"
	CaseEmAndamento = "em_andamento"
	CaseAguardando  = "aguardando"
	CaseConcluido   = "concluido"
	CaseArquivado   = "arquivado"
)

// Case priorities
const (
	PriorityBaixa   = "baixa"
	PriorityMedia   = "media"
	PriorityAlta    = "alta"
	PriorityUrgente = "urgente"
)

// Case represents a CRM legal case record (the auto-fill source for caso.*)
type Case struct {
	ID          string     `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	UserID      string     `gorm:"column:user_id;type:varchar(128);index" json:"user_id"`
	ClientID    string     `gorm:"column:client_id;type:char(36);index" json:"client_id"`
	Title       string     `gorm:"column:title;type:varchar(200)" json:"title"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	CaseNumber  string     `gorm:"column:case_number;type:varchar(50);index" json:"case_number,omitempty"`
	Status      string     `gorm:"column:status;type:varchar(20);default:'novo';index" json:"status"`
	Priority    string     `gorm:"column:priority;type:varchar(20);default:'media'" json:"priority"`
	Court       string     `gorm:"column:court;type:varchar(200)" json:"court,omitempty"`
	Tags        StringList `gorm:"column:tags;type:json" json:"tags"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name
func (Case) TableName() string { return "cases" }

// CaseRequest request body for creating/updating a case
type CaseRequest struct {
	ClientID    string   `json:"client_id" binding:"required"`
	Title       string   `json:"title" binding:"required,min=1,max=200"`
	Description string   `json:"description"`
	CaseNumber  string   `json:"case_number"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Court       string   `json:"court"`
	Tags        []string `json:"tags"`
}
