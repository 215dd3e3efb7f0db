package event

type Type string

const (
	PaymentProcessed        Type = "PAYMENT_PROCESSED"
	NonExistentCustomer     Type = "NON_EXISTENT_CUSTOMER"
	UnableToConvertCurrency Type = "UNABLE_TO_CONVERT_CURRENCY"
	InconsistentData        Type = "INCONSISTENT_DATA"
)

type Event struct {
	Type    Type
	Payload any
}
