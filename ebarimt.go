package qpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// CreateEbarimtRequest issues an ebarimt (electronic tax receipt) for a
// completed payment.
type CreateEbarimtRequest struct {
	PaymentID           string `json:"payment_id"`
	EbarimtReceiverType string `json:"ebarimt_receiver_type"`
	EbarimtReceiver     string `json:"ebarimt_receiver,omitempty"`
	DistrictCode        string `json:"district_code,omitempty"`
	ClassificationCode  string `json:"classification_code,omitempty"`
}

// EbarimtItem is a line item in an ebarimt receipt.
type EbarimtItem struct {
	ID                  string  `json:"id"`
	BarimtID            string  `json:"barimt_id"`
	MerchantProductCode *string `json:"merchant_product_code,omitempty"`
	TaxProductCode      string  `json:"tax_product_code"`
	BarCode             *string `json:"bar_code,omitempty"`
	Name                string  `json:"name"`
	UnitPrice           string  `json:"unit_price"`
	Quantity            string  `json:"quantity"`
	Amount              string  `json:"amount"`
	CityTaxAmount       string  `json:"city_tax_amount"`
	VATAmount           string  `json:"vat_amount"`
	Note                *string `json:"note,omitempty"`
	CreatedBy           string  `json:"created_by"`
	CreatedDate         string  `json:"created_date"`
	UpdatedBy           string  `json:"updated_by"`
	UpdatedDate         string  `json:"updated_date"`
	Status              bool    `json:"status"`
}

// EbarimtHistory is a history entry in an ebarimt receipt.
type EbarimtHistory struct {
	ID                   string  `json:"id"`
	BarimtID             string  `json:"barimt_id"`
	EbarimtReceiverType  string  `json:"ebarimt_receiver_type"`
	EbarimtReceiver      string  `json:"ebarimt_receiver"`
	EbarimtRegisterNo    *string `json:"ebarimt_register_no,omitempty"`
	EbarimtBillID        string  `json:"ebarimt_bill_id"`
	EbarimtDate          string  `json:"ebarimt_date"`
	EbarimtMacAddress    string  `json:"ebarimt_mac_address"`
	EbarimtInternalCode  string  `json:"ebarimt_internal_code"`
	EbarimtBillType      string  `json:"ebarimt_bill_type"`
	EbarimtQRData        string  `json:"ebarimt_qr_data"`
	EbarimtLottery       string  `json:"ebarimt_lottery"`
	EbarimtLotteryMsg    *string `json:"ebarimt_lottery_msg,omitempty"`
	EbarimtErrorCode     *string `json:"ebarimt_error_code,omitempty"`
	EbarimtErrorMsg      *string `json:"ebarimt_error_msg,omitempty"`
	EbarimtResponseCode  *string `json:"ebarimt_response_code,omitempty"`
	EbarimtResponseMsg   *string `json:"ebarimt_response_msg,omitempty"`
	Note                 *string `json:"note,omitempty"`
	BarimtStatus         string  `json:"barimt_status"`
	BarimtStatusDate     string  `json:"barimt_status_date"`
	EbarimtSentEmail     *string `json:"ebarimt_sent_email,omitempty"`
	EbarimtReceiverPhone string  `json:"ebarimt_receiver_phone"`
	TaxType              string  `json:"tax_type"`
	CreatedBy            string  `json:"created_by"`
	CreatedDate          string  `json:"created_date"`
	UpdatedBy            string  `json:"updated_by"`
	UpdatedDate          string  `json:"updated_date"`
	Status               bool    `json:"status"`
}

// EbarimtResponse is returned when an ebarimt receipt is created or
// canceled.
type EbarimtResponse struct {
	ID                   string            `json:"id"`
	EbarimtBy            string            `json:"ebarimt_by"`
	GWalletID            string            `json:"g_wallet_id"`
	GWalletCustomerID    string            `json:"g_wallet_customer_id"`
	EbarimtReceiverType  string            `json:"ebarimt_receiver_type"`
	EbarimtReceiver      string            `json:"ebarimt_receiver"`
	EbarimtDistrictCode  string            `json:"ebarimt_district_code"`
	EbarimtBillType      string            `json:"ebarimt_bill_type"`
	GMerchantID          string            `json:"g_merchant_id"`
	MerchantBranchCode   string            `json:"merchant_branch_code"`
	MerchantTerminalCode *string           `json:"merchant_terminal_code,omitempty"`
	MerchantStaffCode    *string           `json:"merchant_staff_code,omitempty"`
	MerchantRegisterNo   string            `json:"merchant_register_no"`
	GPaymentID           string            `json:"g_payment_id"`
	PaidBy               string            `json:"paid_by"`
	ObjectType           string            `json:"object_type"`
	ObjectID             string            `json:"object_id"`
	Amount               string            `json:"amount"`
	VATAmount            string            `json:"vat_amount"`
	CityTaxAmount        string            `json:"city_tax_amount"`
	EbarimtQRData        string            `json:"ebarimt_qr_data"`
	EbarimtLottery       string            `json:"ebarimt_lottery"`
	Note                 *string           `json:"note,omitempty"`
	BarimtStatus         string            `json:"barimt_status"`
	BarimtStatusDate     string            `json:"barimt_status_date"`
	EbarimtSentEmail     *string           `json:"ebarimt_sent_email,omitempty"`
	EbarimtReceiverPhone string            `json:"ebarimt_receiver_phone"`
	TaxType              string            `json:"tax_type"`
	MerchantTIN          string            `json:"merchant_tin"`
	EbarimtReceiptID     string            `json:"ebarimt_receipt_id"`
	CreatedBy            string            `json:"created_by"`
	CreatedDate          string            `json:"created_date"`
	UpdatedBy            string            `json:"updated_by"`
	UpdatedDate          string            `json:"updated_date"`
	Status               bool              `json:"status"`
	BarimtItems          []EbarimtItem     `json:"barimt_items"`
	BarimtTransactions   []json.RawMessage `json:"barimt_transactions"`
	BarimtHistories      []EbarimtHistory  `json:"barimt_histories"`
}

// CreateEbarimt creates an ebarimt (electronic tax receipt).
// POST /v2/ebarimt_v3/create
func (c *Client) CreateEbarimt(ctx context.Context, req *CreateEbarimtRequest) (*EbarimtResponse, error) {
	var resp EbarimtResponse
	if err := c.do(ctx, http.MethodPost, "/v2/ebarimt_v3/create", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelEbarimt cancels an ebarimt by payment ID.
// DELETE /v2/ebarimt_v3/{id}
func (c *Client) CancelEbarimt(ctx context.Context, paymentID string) (*EbarimtResponse, error) {
	var resp EbarimtResponse
	if err := c.do(ctx, http.MethodDelete, "/v2/ebarimt_v3/"+url.PathEscape(paymentID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
