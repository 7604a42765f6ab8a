package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Client types
const (
	ClientPessoaFisica   = "pessoa_fisica"
	ClientPessoaJuridica = "pessoa_juridica"
)

// Address is the client address stored as a JSON column
type Address struct {
	CEP          string `json:"cep,omitempty"`
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	UF           string `json:"uf,omitempty"`
}

// Scan implements sql.Scanner
func (a *Address) Scan(value interface{}) error {
	if value == nil {
		*a = Address{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("type assertion to []byte failed")
	}
}

// Value implements driver.Valuer
func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Client represents a CRM client record (the auto-fill source for cliente.*)
type Client struct {
	ID            string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	UserID        string    `gorm:"column:user_id;type:varchar(128);index" json:"user_id"`
	Name          string    `gorm:"column:name;type:varchar(200);index" json:"name"`
	CPFCNPJ       string    `gorm:"column:cpf_cnpj;type:varchar(18);index" json:"cpf_cnpj"`
	ClientType    string    `gorm:"column:client_type;type:varchar(20);default:'pessoa_fisica'" json:"client_type"`
	Email         string    `gorm:"column:email;type:varchar(255)" json:"email"`
	Phone         string    `gorm:"column:phone;type:varchar(16)" json:"phone"`
	BirthDate     string    `gorm:"column:birth_date;type:varchar(10)" json:"birth_date,omitempty"` // DD/MM/AAAA
	Nationality   string    `gorm:"column:nationality;type:varchar(50)" json:"nationality,omitempty"`
	MaritalStatus string    `gorm:"column:marital_status;type:varchar(20)" json:"marital_status,omitempty"`
	Profession    string    `gorm:"column:profession;type:varchar(100)" json:"profession,omitempty"`
	Address       Address   `gorm:"column:address;type:json" json:"address"`
	Notes         string    `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name
func (Client) TableName() string { return "clients" }

// ClientRequest request body for creating/updating a client
type ClientRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=200"`
	CPFCNPJ       string  `json:"cpf_cnpj" binding:"required"`
	ClientType    string  `json:"client_type"`
	Email         string  `json:"email" binding:"required,email"`
	Phone         string  `json:"phone" binding:"required"`
	BirthDate     string  `json:"birth_date"`
	Nationality   string  `json:"nationality"`
	MaritalStatus string  `json:"marital_status"`
	Profession    string  `json:"profession"`
	Address       Address `json:"address"`
	Notes         string  `json:"notes"`
}
