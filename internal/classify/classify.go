// Package classify knows the SII document type codes: which register each
// code belongs to, which ledger operation it produces, and the display name
// of each electronic document.
package classify

import (
	"cajapyme/libro-caja/internal/currencyutils"
	"cajapyme/libro-caja/internal/models"
)

// SII document type code groups.
var (
	SalesInvoiceCodes   = []int{33, 34, 110}
	CreditNoteCodes     = []int{61, 112}
	DebitNoteCodes      = []int{56, 111}
	TaxedReceiptCodes   = []int{35, 39}
	ExemptReceiptCodes  = []int{38, 41}
	PaymentVoucherCodes = []int{48}
)

func contains(codes []int, code int) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// DocTypeCode reads a document type code from a register cell. The cell
// is read as a Chilean-formatted number, so a stray decimal comma is
// tolerated. Unreadable cells come back as code zero, which belongs to
// no group.
func DocTypeCode(raw string) int {
	value, err := currencyutils.ParseAmount(raw)
	if err != nil || value.IsZero() {
		return 0
	}
	return int(value.IntPart())
}

// IsSalesInvoice reports whether the code is an invoice type, export
// invoices included.
func IsSalesInvoice(code int) bool {
	return contains(SalesInvoiceCodes, code)
}

// IsCreditNote reports whether the code is a credit note type.
func IsCreditNote(code int) bool {
	return contains(CreditNoteCodes, code)
}

// IsDebitNote reports whether the code is a debit note type.
func IsDebitNote(code int) bool {
	return contains(DebitNoteCodes, code)
}

// IsReceipt reports whether the code is a boleta, taxed or exempt.
func IsReceipt(code int) bool {
	return contains(TaxedReceiptCodes, code) || contains(ExemptReceiptCodes, code)
}

// IsPaymentVoucher reports whether the code is an electronic payment
// voucher.
func IsPaymentVoucher(code int) bool {
	return contains(PaymentVoucherCodes, code)
}

// IsSalesDocument reports whether the code belongs in the sales register:
// invoices plus their credit and debit notes.
func IsSalesDocument(code int) bool {
	return IsSalesInvoice(code) || IsCreditNote(code) || IsDebitNote(code)
}

// IsSummaryDocument reports whether the code belongs in a daily sales
// summary: boletas and payment vouchers.
func IsSummaryDocument(code int) bool {
	return IsReceipt(code) || IsPaymentVoucher(code)
}

// SaleOperation returns the ledger kind and gloss prefix for a sales
// register document. ok is false when the code is outside the sales
// whitelist and the row must be skipped.
func SaleOperation(code int) (kind models.OperationKind, glossPrefix string, ok bool) {
	switch {
	case IsCreditNote(code):
		return models.OperationExpense, "NC Venta", true
	case IsDebitNote(code):
		return models.OperationIncome, "ND Venta", true
	case IsSalesInvoice(code):
		return models.OperationIncome, "Venta", true
	default:
		return 0, "", false
	}
}

// PurchaseOperation returns the ledger kind and gloss prefix for a purchase
// register document. The purchase register has no whitelist; unknown codes
// behave as plain purchases.
func PurchaseOperation(code int) (models.OperationKind, string) {
	switch {
	case IsCreditNote(code):
		return models.OperationIncome, "NC Compra"
	case IsDebitNote(code):
		return models.OperationExpense, "ND Compra"
	default:
		return models.OperationExpense, "Compra"
	}
}

// DefaultDocTypeNames returns the SII electronic document names, keyed by
// type code.
func DefaultDocTypeNames() map[int]string {
	return map[int]string{
		33:  "Factura Electrónica",
		34:  "Factura No Afecta o Exenta Elec.",
		35:  "Boleta Afecta Electrónica",
		38:  "Boleta No Afecta o Exenta Elec.",
		39:  "Boleta Electrónica",
		41:  "Boleta Exenta Electrónica",
		46:  "Factura de Compra Electrónica",
		48:  "Comprobante de Pago Electrónico",
		52:  "Guía de Despacho Electrónica",
		56:  "Nota de Débito Electrónica",
		61:  "Nota de Crédito Electrónica",
		110: "Factura de Exportación Electrónica",
		111: "Nota de Débito de Exportación Elec.",
		112: "Nota de Crédito de Exportación Elec.",
	}
}

// DocumentTypeName resolves the display label for a type code, falling back
// to the raw label from the file when the code has no known name.
func DocumentTypeName(code int, names map[int]string, rawLabel string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return rawLabel
}
