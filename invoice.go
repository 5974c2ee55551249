package qpay

import (
	"context"
	"net/http"
	"net/url"

	"github.com/qpaymn/qpay-go/internal/pkg/idgen"
)

// Address is a physical address attached to invoice sender or receiver data.
type Address struct {
	City      string `json:"city,omitempty"`
	District  string `json:"district,omitempty"`
	Street    string `json:"street,omitempty"`
	Building  string `json:"building,omitempty"`
	Address   string `json:"address,omitempty"`
	Zipcode   string `json:"zipcode,omitempty"`
	Longitude string `json:"longitude,omitempty"`
	Latitude  string `json:"latitude,omitempty"`
}

// SenderBranchData identifies the merchant branch issuing an invoice.
type SenderBranchData struct {
	Register string   `json:"register,omitempty"`
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Address  *Address `json:"address,omitempty"`
}

// SenderStaffData identifies the staff member issuing an invoice.
type SenderStaffData struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// InvoiceReceiverData describes the customer an invoice is issued to.
type InvoiceReceiverData struct {
	Register string   `json:"register,omitempty"`
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Address  *Address `json:"address,omitempty"`
}

// Account is a bank account an invoice settles into.
type Account struct {
	AccountBankCode string `json:"account_bank_code"`
	AccountNumber   string `json:"account_number"`
	IBANNumber      string `json:"iban_number"`
	AccountName     string `json:"account_name"`
	AccountCurrency string `json:"account_currency"`
	IsDefault       bool   `json:"is_default"`
}

// TaxEntry is a tax, discount, or surcharge line entry.
type TaxEntry struct {
	TaxCode       string  `json:"tax_code,omitempty"`
	DiscountCode  string  `json:"discount_code,omitempty"`
	SurchargeCode string  `json:"surcharge_code,omitempty"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Note          string  `json:"note,omitempty"`
}

// Transaction is a settlement transaction within an invoice.
type Transaction struct {
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Accounts    []Account `json:"accounts,omitempty"`
}

// InvoiceLine is a line item in a detailed invoice.
type InvoiceLine struct {
	TaxProductCode  string     `json:"tax_product_code,omitempty"`
	LineDescription string     `json:"line_description"`
	LineQuantity    string     `json:"line_quantity"`
	LineUnitPrice   string     `json:"line_unit_price"`
	Note            string     `json:"note,omitempty"`
	Discounts       []TaxEntry `json:"discounts,omitempty"`
	Surcharges      []TaxEntry `json:"surcharges,omitempty"`
	Taxes           []TaxEntry `json:"taxes,omitempty"`
}

// EbarimtInvoiceLine is a line item in an invoice carrying ebarimt tax
// information.
type EbarimtInvoiceLine struct {
	TaxProductCode     string     `json:"tax_product_code,omitempty"`
	LineDescription    string     `json:"line_description"`
	Barcode            string     `json:"barcode,omitempty"`
	LineQuantity       string     `json:"line_quantity"`
	LineUnitPrice      string     `json:"line_unit_price"`
	Note               string     `json:"note,omitempty"`
	ClassificationCode string     `json:"classification_code,omitempty"`
	Taxes              []TaxEntry `json:"taxes,omitempty"`
}

// Deeplink is a bank-app payment link returned with an invoice.
type Deeplink struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Link        string `json:"link"`
}

// CreateInvoiceRequest creates a detailed invoice with full options.
type CreateInvoiceRequest struct {
	InvoiceCode          string               `json:"invoice_code"`
	SenderInvoiceNo      string               `json:"sender_invoice_no"`
	InvoiceReceiverCode  string               `json:"invoice_receiver_code"`
	InvoiceDescription   string               `json:"invoice_description"`
	Amount               float64              `json:"amount"`
	CallbackURL          string               `json:"callback_url"`
	SenderBranchCode     string               `json:"sender_branch_code,omitempty"`
	SenderBranchData     *SenderBranchData    `json:"sender_branch_data,omitempty"`
	SenderStaffData      *SenderStaffData     `json:"sender_staff_data,omitempty"`
	SenderStaffCode      string               `json:"sender_staff_code,omitempty"`
	InvoiceReceiverData  *InvoiceReceiverData `json:"invoice_receiver_data,omitempty"`
	EnableExpiry         *string              `json:"enable_expiry,omitempty"`
	AllowPartial         *bool                `json:"allow_partial,omitempty"`
	MinimumAmount        *float64             `json:"minimum_amount,omitempty"`
	AllowExceed          *bool                `json:"allow_exceed,omitempty"`
	MaximumAmount        *float64             `json:"maximum_amount,omitempty"`
	SenderTerminalCode   *string              `json:"sender_terminal_code,omitempty"`
	SenderTerminalData   any                  `json:"sender_terminal_data,omitempty"`
	AllowSubscribe       *bool                `json:"allow_subscribe,omitempty"`
	SubscriptionInterval string               `json:"subscription_interval,omitempty"`
	SubscriptionWebhook  string               `json:"subscription_webhook,omitempty"`
	Note                 *string              `json:"note,omitempty"`
	Transactions         []Transaction        `json:"transactions,omitempty"`
	Lines                []InvoiceLine        `json:"lines,omitempty"`
}

// CreateSimpleInvoiceRequest creates an invoice with minimal fields.
// InvoiceCode and CallbackURL default from the client configuration when
// empty, and an empty SenderInvoiceNo is filled with a generated unique
// invoice number.
type CreateSimpleInvoiceRequest struct {
	InvoiceCode         string  `json:"invoice_code"`
	SenderInvoiceNo     string  `json:"sender_invoice_no"`
	InvoiceReceiverCode string  `json:"invoice_receiver_code"`
	InvoiceDescription  string  `json:"invoice_description"`
	Amount              float64 `json:"amount"`
	CallbackURL         string  `json:"callback_url"`
	SenderBranchCode    string  `json:"sender_branch_code,omitempty"`
}

// CreateEbarimtInvoiceRequest creates an invoice with ebarimt (tax)
// information.
type CreateEbarimtInvoiceRequest struct {
	InvoiceCode         string               `json:"invoice_code"`
	SenderInvoiceNo     string               `json:"sender_invoice_no"`
	InvoiceReceiverCode string               `json:"invoice_receiver_code"`
	InvoiceDescription  string               `json:"invoice_description"`
	TaxType             string               `json:"tax_type"`
	DistrictCode        string               `json:"district_code"`
	CallbackURL         string               `json:"callback_url"`
	Lines               []EbarimtInvoiceLine `json:"lines"`
	SenderBranchCode    string               `json:"sender_branch_code,omitempty"`
	SenderStaffData     *SenderStaffData     `json:"sender_staff_data,omitempty"`
	SenderStaffCode     string               `json:"sender_staff_code,omitempty"`
	InvoiceReceiverData *InvoiceReceiverData `json:"invoice_receiver_data,omitempty"`
}

// InvoiceResponse is returned when an invoice is created.
type InvoiceResponse struct {
	InvoiceID    string     `json:"invoice_id"`
	QRText       string     `json:"qr_text"`
	QRImage      string     `json:"qr_image"`
	QPayShortURL string     `json:"qPay_shortUrl"`
	URLs         []Deeplink `json:"urls"`
}

// CreateInvoice creates a detailed invoice with full options.
// POST /v2/invoice
func (c *Client) CreateInvoice(ctx context.Context, req *CreateInvoiceRequest) (*InvoiceResponse, error) {
	var resp InvoiceResponse
	if err := c.do(ctx, http.MethodPost, "/v2/invoice", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateSimpleInvoice creates a simple invoice with minimal fields, filling
// the invoice code, callback URL, and invoice number from configuration when
// the request leaves them empty. POST /v2/invoice
func (c *Client) CreateSimpleInvoice(ctx context.Context, req *CreateSimpleInvoiceRequest) (*InvoiceResponse, error) {
	r := *req
	if r.InvoiceCode == "" {
		r.InvoiceCode = c.config.InvoiceCode
	}
	if r.CallbackURL == "" {
		r.CallbackURL = c.config.CallbackURL
	}
	if r.SenderInvoiceNo == "" {
		r.SenderInvoiceNo = idgen.InvoiceNo()
	}

	var resp InvoiceResponse
	if err := c.do(ctx, http.MethodPost, "/v2/invoice", &r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateEbarimtInvoice creates an invoice with ebarimt (tax) information.
// POST /v2/invoice
func (c *Client) CreateEbarimtInvoice(ctx context.Context, req *CreateEbarimtInvoiceRequest) (*InvoiceResponse, error) {
	var resp InvoiceResponse
	if err := c.do(ctx, http.MethodPost, "/v2/invoice", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelInvoice cancels an existing invoice by ID.
// DELETE /v2/invoice/{id}
func (c *Client) CancelInvoice(ctx context.Context, invoiceID string) error {
	return c.do(ctx, http.MethodDelete, "/v2/invoice/"+url.PathEscape(invoiceID), nil, nil)
}
