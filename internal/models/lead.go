// internal/models/lead.go
package models

// B2BLead captures a wholesale contact request from the public site.
type B2BLead struct {
	BaseModel
	CompanyName   string `json:"companyName" gorm:"size:255;not null"`
	ContactPerson string `json:"contactPerson" gorm:"size:100;not null"`
	Email         string `json:"email" gorm:"size:255;not null"`
	Phone         string `json:"phone" gorm:"size:50;not null"`
	Message       string `json:"message" gorm:"type:text"`
}
