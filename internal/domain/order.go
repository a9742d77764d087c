package domain

import "fmt"

// Order — черновик заказа, заполняемый по одному полю.
// Пустая строка означает «поле не задано».
type Order struct {
	Payment string   `json:"payment"`
	Address string   `json:"address"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Items   []string `json:"items"`
	Total   int      `json:"total"`
}

// OrderResult — ответ магазина на оформленный заказ.
type OrderResult struct {
	Order
	ID    string `json:"id"`
	Error string `json:"error,omitempty"`
}

// OrderField — имя поля формы заказа. Закрытый набор значений:
// неизвестное имя отбрасывается на границе через ParseOrderField.
type OrderField string

const (
	FieldPayment OrderField = "payment"
	FieldAddress OrderField = "address"
	FieldEmail   OrderField = "email"
	FieldPhone   OrderField = "phone"
)

// ParseOrderField проверяет имя поля формы заказа.
func ParseOrderField(name string) (OrderField, error) {
	switch f := OrderField(name); f {
	case FieldPayment, FieldAddress, FieldEmail, FieldPhone:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown order field %q", ErrValidation, name)
}

// FormErrors — сообщения об ошибках валидации по полям формы.
// Поле присутствует в карте только когда оно невалидно.
type FormErrors map[OrderField]string

// Set записывает значение в поле черновика.
func (o *Order) Set(field OrderField, value string) {
	switch field {
	case FieldPayment:
		o.Payment = value
	case FieldAddress:
		o.Address = value
	case FieldEmail:
		o.Email = value
	case FieldPhone:
		o.Phone = value
	}
}
