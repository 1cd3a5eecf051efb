package models

// Origin tags recorded on each CanonicalRecord. Diagnostics only; business
// logic never branches on them.
const (
	OriginOpening         = "saldo_inicial"
	OriginSalesInvoice    = "venta_factura"
	OriginSalesSummary    = "resumen_ventas"
	OriginPurchase        = "compra"
	OriginManualPayment   = "pago_manual"
	OriginProfessionalFee = "honorarios"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
