package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Employee is a workshop worker. TotalSalary accumulates every payment made
// through the salary endpoint.
type Employee struct {
	BaseModel
	FullName    string          `json:"full_name"`
	PhoneNumber string          `gorm:"index" json:"phone_number"`
	Profession  string          `json:"profession"`
	Share       float64         `json:"share"`
	TotalSalary decimal.Decimal `gorm:"type:numeric(11,2)" json:"total_salary"`
}

// EmployeePayment is one salary payment to an employee.
type EmployeePayment struct {
	BaseModel
	EmployeeID uuid.UUID       `gorm:"type:uuid;index" json:"employee_id"`
	Employee   *Employee       `json:"employee,omitempty"`
	Amount     decimal.Decimal `gorm:"type:numeric(11,2)" json:"amount"`
}
