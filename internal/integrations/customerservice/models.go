package customerservice

// Role роль пользователя в CustomerService
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Customer модель клиента из CustomerService
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// IsAdmin возвращает true, если пользователь - администратор студии
func (c *Customer) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Vehicle модель автомобиля клиента из CustomerService
type Vehicle struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customer_id"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	LicensePlate string `json:"license_plate"`
	Color        string `json:"color"`
	IsSelected   bool   `json:"is_selected"`
}

// ErrorResponse модель ошибки от CustomerService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
