package models

type OrderStatus string

const (
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusReady      OrderStatus = "READY"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
)

var OrderStatuses = []OrderStatus{
	OrderStatusInProgress,
	OrderStatusReady,
	OrderStatusDelivered,
}

type PaymentType string

const (
	PaymentTypeCB          PaymentType = "CB"
	PaymentTypeMastercard  PaymentType = "MASTERCARD"
	PaymentTypeVisa        PaymentType = "VISA"
	PaymentTypePaypal      PaymentType = "PAYPAL"
	PaymentTypeApplePay    PaymentType = "APPLE_PAY"
	PaymentTypeGooglePay   PaymentType = "GOOGLE_PAY"
	PaymentTypeMealVoucher PaymentType = "MEAL_VOUCHER"
	PaymentTypeBitcoin     PaymentType = "BITCOIN"
	PaymentTypeIzly        PaymentType = "IZLY"
)

var PaymentTypes = []PaymentType{
	PaymentTypeCB,
	PaymentTypeMastercard,
	PaymentTypeVisa,
	PaymentTypePaypal,
	PaymentTypeApplePay,
	PaymentTypeGooglePay,
	PaymentTypeMealVoucher,
	PaymentTypeBitcoin,
	PaymentTypeIzly,
}

type ShareholderType string

const (
	ShareholderTypeClient       ShareholderType = "CLIENT"
	ShareholderTypeDriver       ShareholderType = "DRIVER"
	ShareholderTypeRestaurateur ShareholderType = "RESTAURATEUR"
)

var ShareholderTypes = []ShareholderType{
	ShareholderTypeClient,
	ShareholderTypeDriver,
	ShareholderTypeRestaurateur,
}
