package qpay

import (
	"context"
	"net/http"
	"net/url"
)

// Offset is a pagination window for list-style endpoints.
type Offset struct {
	PageNumber int `json:"page_number"`
	PageLimit  int `json:"page_limit"`
}

// PaymentCheckRequest asks whether a payment has been made for an object,
// usually an invoice.
type PaymentCheckRequest struct {
	ObjectType string  `json:"object_type"`
	ObjectID   string  `json:"object_id"`
	Offset     *Offset `json:"offset,omitempty"`
}

// CardTransaction is a card settlement attached to a payment.
type CardTransaction struct {
	CardMerchantCode     string `json:"card_merchant_code"`
	CardTerminalCode     string `json:"card_terminal_code"`
	CardNumber           string `json:"card_number"`
	CardType             string `json:"card_type"`
	IsCrossBorder        bool   `json:"is_cross_border"`
	Amount               string `json:"amount"`
	TransactionAmount    string `json:"transaction_amount"`
	Currency             string `json:"currency"`
	TransactionCurrency  string `json:"transaction_currency"`
	Date                 string `json:"date"`
	TransactionDate      string `json:"transaction_date"`
	Status               string `json:"status"`
	TransactionStatus    string `json:"transaction_status"`
	SettlementStatus     string `json:"settlement_status"`
	SettlementStatusDate string `json:"settlement_status_date"`
}

// P2PTransaction is a bank-transfer settlement attached to a payment.
type P2PTransaction struct {
	TransactionBankCode string `json:"transaction_bank_code"`
	AccountBankCode     string `json:"account_bank_code"`
	AccountBankName     string `json:"account_bank_name"`
	AccountNumber       string `json:"account_number"`
	Status              string `json:"status"`
	Amount              string `json:"amount"`
	Currency            string `json:"currency"`
	SettlementStatus    string `json:"settlement_status"`
}

// PaymentCheckRow is one payment in a payment check response.
type PaymentCheckRow struct {
	PaymentID           string            `json:"payment_id"`
	PaymentStatus       string            `json:"payment_status"`
	PaymentAmount       string            `json:"payment_amount"`
	TrxFee              string            `json:"trx_fee"`
	PaymentCurrency     string            `json:"payment_currency"`
	PaymentWallet       string            `json:"payment_wallet"`
	PaymentType         string            `json:"payment_type"`
	NextPaymentDate     *string           `json:"next_payment_date,omitempty"`
	NextPaymentDatetime *string           `json:"next_payment_datetime,omitempty"`
	CardTransactions    []CardTransaction `json:"card_transactions"`
	P2PTransactions     []P2PTransaction  `json:"p2p_transactions"`
}

// PaymentCheckResponse is the result of a payment check.
type PaymentCheckResponse struct {
	Count      int               `json:"count"`
	PaidAmount float64           `json:"paid_amount"`
	Rows       []PaymentCheckRow `json:"rows"`
}

// PaymentDetail is the full record of a single payment.
type PaymentDetail struct {
	PaymentID           string            `json:"payment_id"`
	PaymentStatus       string            `json:"payment_status"`
	PaymentFee          string            `json:"payment_fee"`
	PaymentAmount       string            `json:"payment_amount"`
	PaymentCurrency     string            `json:"payment_currency"`
	PaymentDate         string            `json:"payment_date"`
	PaymentWallet       string            `json:"payment_wallet"`
	TransactionType     string            `json:"transaction_type"`
	ObjectType          string            `json:"object_type"`
	ObjectID            string            `json:"object_id"`
	NextPaymentDate     *string           `json:"next_payment_date,omitempty"`
	NextPaymentDatetime *string           `json:"next_payment_datetime,omitempty"`
	CardTransactions    []CardTransaction `json:"card_transactions"`
	P2PTransactions     []P2PTransaction  `json:"p2p_transactions"`
}

// PaymentListRequest selects payments by object and date range.
type PaymentListRequest struct {
	ObjectType string `json:"object_type"`
	ObjectID   string `json:"object_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Offset     Offset `json:"offset"`
}

// PaymentListItem is one payment in a payment list response.
type PaymentListItem struct {
	PaymentID          string `json:"payment_id"`
	PaymentDate        string `json:"payment_date"`
	PaymentStatus      string `json:"payment_status"`
	PaymentFee         string `json:"payment_fee"`
	PaymentAmount      string `json:"payment_amount"`
	PaymentCurrency    string `json:"payment_currency"`
	PaymentWallet      string `json:"payment_wallet"`
	PaymentName        string `json:"payment_name"`
	PaymentDescription string `json:"payment_description"`
	QRCode             string `json:"qr_code"`
	PaidBy             string `json:"paid_by"`
	ObjectType         string `json:"object_type"`
	ObjectID           string `json:"object_id"`
}

// PaymentListResponse is the result of listing payments.
type PaymentListResponse struct {
	Count int               `json:"count"`
	Rows  []PaymentListItem `json:"rows"`
}

// PaymentCancelRequest cancels a payment.
type PaymentCancelRequest struct {
	CallbackURL string `json:"callback_url,omitempty"`
	Note        string `json:"note,omitempty"`
}

// PaymentRefundRequest refunds a payment.
type PaymentRefundRequest struct {
	CallbackURL string `json:"callback_url,omitempty"`
	Note        string `json:"note,omitempty"`
}

// GetPayment retrieves payment details by payment ID.
// GET /v2/payment/{id}
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*PaymentDetail, error) {
	var resp PaymentDetail
	if err := c.do(ctx, http.MethodGet, "/v2/payment/"+url.PathEscape(paymentID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckPayment checks whether a payment has been made for an invoice.
// POST /v2/payment/check
func (c *Client) CheckPayment(ctx context.Context, req *PaymentCheckRequest) (*PaymentCheckResponse, error) {
	var resp PaymentCheckResponse
	if err := c.do(ctx, http.MethodPost, "/v2/payment/check", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListPayments returns payments matching the given criteria.
// POST /v2/payment/list
func (c *Client) ListPayments(ctx context.Context, req *PaymentListRequest) (*PaymentListResponse, error) {
	var resp PaymentListResponse
	if err := c.do(ctx, http.MethodPost, "/v2/payment/list", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelPayment cancels a payment. Card transactions only.
// DELETE /v2/payment/cancel/{id}
func (c *Client) CancelPayment(ctx context.Context, paymentID string, req *PaymentCancelRequest) error {
	return c.do(ctx, http.MethodDelete, "/v2/payment/cancel/"+url.PathEscape(paymentID), req, nil)
}

// RefundPayment refunds a payment. Card transactions only.
// DELETE /v2/payment/refund/{id}
func (c *Client) RefundPayment(ctx context.Context, paymentID string, req *PaymentRefundRequest) error {
	return c.do(ctx, http.MethodDelete, "/v2/payment/refund/"+url.PathEscape(paymentID), req, nil)
}
