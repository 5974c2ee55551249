// Package qpay is a client for the QPay V2 merchant API.
//
// The client obtains and refreshes access tokens automatically: every API
// call checks the stored token pair first, reuses it while it is still valid,
// refreshes it when only the refresh window is open, and falls back to a full
// credential exchange otherwise. Token management is safe for concurrent use
// from multiple goroutines.
//
// Construct a client from explicit configuration or from the QPAY_*
// environment variables:
//
//	cfg, err := qpay.ConfigFromEnv()
//	if err != nil {
//		log.Fatal(err)
//	}
//	client := qpay.NewClient(*cfg)
//	defer client.Close()
//
//	inv, err := client.CreateSimpleInvoice(ctx, &qpay.CreateSimpleInvoiceRequest{
//		InvoiceReceiverCode: "terminal",
//		InvoiceDescription:  "Order #1234",
//		Amount:              10000,
//	})
//
// API failures are reported as *APIError (resource endpoints) or *AuthError
// (token endpoints), both carrying the HTTP status and the server-declared
// error code so callers can branch on conditions such as ErrCodeInvoicePaid.
package qpay
