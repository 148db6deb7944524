package cashbox

import "courtgrid/internal/pkg/errs"

var (
	ErrInvalidMovementType = errs.New("invalid movement type")
	ErrInvalidMethod       = errs.New("invalid payment method")
)

type MovementType string

const (
	MovementIncome  MovementType = "income"
	MovementExpense MovementType = "expense"
)

func NewMovementType(s string) (MovementType, error) {
	switch MovementType(s) {
	case MovementIncome, MovementExpense:
		return MovementType(s), nil
	default:
		return "", ErrInvalidMovementType
	}
}

func (m MovementType) String() string { return string(m) }

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
)

func NewPaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case MethodCash, MethodCard, MethodTransfer:
		return PaymentMethod(s), nil
	default:
		return "", ErrInvalidMethod
	}
}

func (m PaymentMethod) String() string { return string(m) }

type EntryType string

const (
	EntryCharge  EntryType = "charge"
	EntryPayment EntryType = "payment"
)

func NewEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case EntryCharge, EntryPayment:
		return EntryType(s), nil
	default:
		return "", errs.New("invalid account entry type")
	}
}

func (e EntryType) String() string { return string(e) }
