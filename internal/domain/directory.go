package domain

import "time"

// Customer is a shopper an order can be recorded against
type Customer struct {
	ID        int64  `json:"customer_id" db:"customer_id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Email     string `json:"email" db:"email"`
	Phone     string `json:"phone" db:"phone"`
}

// Employee is a staff member who rings up orders
type Employee struct {
	ID        int64     `json:"employee_id" db:"employee_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Role      string    `json:"role" db:"role"`
	HireDate  time.Time `json:"hire_date" db:"hire_date"`
}
